package algo

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/DhairyaSavaliya/Pathfinding-Algorithm-Visualizer/model"
	"github.com/DhairyaSavaliya/Pathfinding-Algorithm-Visualizer/utils"
)

// Graph 路网图结构, 供四种寻路算法共用
//
// 字段全部不导出: 图构建完成之后对所有查询都是只读的,
// 几个算法顺序复用同一张图, 靠的就是谁都不往图上写东西
// (访问标记、距离等遍历状态全部放在每次调用自己的 map 里)
// 外部包只能通过下面的只读方法访问
type Graph struct {
	nodes    map[string]*model.Node   // 节点字典 (ID -> Node)
	adj      map[string][]*model.Edge // 邻接表 (ID -> 出边列表)
	nodeList []model.Node             // 节点列表 (保持加载顺序, 用于遍历)
	maxSpeed float64                  // 全图最高畅通速度 (米/秒), A* 的时间启发需要
}

// NewGraph 创建一个空的图
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*model.Node),
		adj:   make(map[string][]*model.Edge),
	}
}

// AddNode 添加一个节点 (重复 ID 覆盖)
func (g *Graph) AddNode(node *model.Node) {
	if _, exists := g.nodes[node.ID]; !exists {
		g.nodeList = append(g.nodeList, *node)
	}
	g.nodes[node.ID] = node
}

// AddEdge 添加一条边, 并补全缺失的距离/速度/通行时间
// 非单行道会自动补一条反向边 (与 OSM 的 oneway 语义一致)
func (g *Graph) AddEdge(edge *model.Edge) error {
	from := g.nodes[edge.From]
	to := g.nodes[edge.To]
	if from == nil || to == nil {
		return fmt.Errorf("边 %s->%s 的端点不在图中", edge.From, edge.To)
	}

	// 距离缺失时用 Haversine 算球面距离
	if edge.Dist == 0 && edge.From != edge.To {
		p1 := model.Point{Lat: from.Lat, Lng: from.Lng}
		p2 := model.Point{Lat: to.Lat, Lng: to.Lng}
		edge.Dist = utils.HaversineDistance(p1, p2)
	}
	// 速度缺失时按道路等级取默认值
	if edge.Speed == 0 {
		edge.Speed = model.DefaultSpeed(edge.Highway)
	}
	// 通行时间缺失时按 Dist/Speed 估算
	if edge.TravelTime == 0 {
		edge.TravelTime = model.ComputeTravelTime(edge.Dist, edge.Speed)
	}

	g.adj[edge.From] = append(g.adj[edge.From], edge)
	if mps := edge.Speed / 3.6; mps > g.maxSpeed {
		g.maxSpeed = mps
	}

	// 双向道路补反向边 (避免重复添加)
	if !edge.Oneway {
		reverseExists := false
		for _, existing := range g.adj[edge.To] {
			if existing.To == edge.From {
				reverseExists = true
				break
			}
		}
		if !reverseExists {
			reverse := &model.Edge{
				From:       edge.To,
				To:         edge.From,
				Dist:       edge.Dist,
				Speed:      edge.Speed,
				TravelTime: edge.TravelTime,
				Highway:    edge.Highway,
				Name:       edge.Name,
				Oneway:     true, // 反向边本身不再镜像
			}
			g.adj[reverse.From] = append(g.adj[reverse.From], reverse)
		}
	}

	return nil
}

// LoadFromJSON 从 JSON 文件加载地图数据
func LoadFromJSON(filepath string) (*Graph, error) {
	file, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("读取文件失败: %w", err)
	}

	var data model.MapData
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("解析 JSON 失败: %w", err)
	}

	g := NewGraph()
	for i := range data.Nodes {
		g.AddNode(&data.Nodes[i])
	}

	skipped := 0
	for i := range data.Edges {
		if err := g.AddEdge(&data.Edges[i]); err != nil {
			skipped++
		}
	}
	if skipped > 0 {
		log.Printf("警告: 跳过了 %d 条端点缺失的边", skipped)
	}

	return g, nil
}

// HasNode 判断节点是否存在
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node 按 ID 取节点, 不存在返回 nil
func (g *Graph) Node(id string) *model.Node {
	return g.nodes[id]
}

// Neighbors 返回指定节点的出边列表 (调用方不得修改)
func (g *Graph) Neighbors(id string) []*model.Edge {
	return g.adj[id]
}

// NodeCount 节点总数
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// NodeList 按加载顺序返回所有节点
func (g *Graph) NodeList() []model.Node {
	return g.nodeList
}

// MaxSpeedMPS 全图最高畅通速度 (米/秒), 图里没有边时为 0
func (g *Graph) MaxSpeedMPS() float64 {
	return g.maxSpeed
}

// FindNearestNode 找到离给定坐标最近的节点
func (g *Graph) FindNearestNode(lat, lng float64) *model.Node {
	var nearest *model.Node
	minDist := -1.0

	target := model.Point{Lat: lat, Lng: lng}
	for _, node := range g.nodeList {
		p := model.Point{Lat: node.Lat, Lng: node.Lng}
		dist := utils.HaversineDistance(target, p)

		if minDist < 0 || dist < minDist {
			minDist = dist
			nearest = g.nodes[node.ID]
		}
	}

	return nearest
}
