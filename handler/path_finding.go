package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/DhairyaSavaliya/Pathfinding-Algorithm-Visualizer/algo"

	"github.com/gin-gonic/gin"
)

// Graph 全局图对象 (应在 main 中初始化)
var Graph *algo.Graph

// PathRequest 单算法路径规划请求
type PathRequest struct {
	StartID   string  `json:"start_id"`            // 起点节点 ID
	EndID     string  `json:"end_id"`              // 终点节点 ID
	StartLat  float64 `json:"start_lat,omitempty"` // 起点纬度 (可选, 自动吸附最近节点)
	StartLng  float64 `json:"start_lng,omitempty"` // 起点经度 (可选)
	EndLat    float64 `json:"end_lat,omitempty"`   // 终点纬度 (可选)
	EndLng    float64 `json:"end_lng,omitempty"`   // 终点经度 (可选)
	Algorithm string  `json:"algorithm"`           // dijkstra / astar / bfs / bellman-ford, 默认 dijkstra
	Weight    string  `json:"weight"`              // dist / time, 默认 dist
	TimeoutMs int     `json:"timeout_ms"`          // 单算法时限 (毫秒), 0 不限
}

// CompareRequest 多算法对比请求
type CompareRequest struct {
	StartID    string   `json:"start_id"`
	EndID      string   `json:"end_id"`
	StartLat   float64  `json:"start_lat,omitempty"`
	StartLng   float64  `json:"start_lng,omitempty"`
	EndLat     float64  `json:"end_lat,omitempty"`
	EndLng     float64  `json:"end_lng,omitempty"`
	Algorithms []string `json:"algorithms"` // 为空时对比全部四种算法
	Weight     string   `json:"weight"`
	TimeoutMs  int      `json:"timeout_ms"`
}

// PathNode 路径节点信息
type PathNode struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Type string  `json:"type"`
}

// AlgoResult 单个算法的执行结果 (成功或失败都会返回)
type AlgoResult struct {
	Algorithm    string   `json:"algorithm"`
	Found        bool     `json:"found"`
	Path         []string `json:"path,omitempty"`        // 节点 ID 序列
	Distance     float64  `json:"distance"`              // 按权重属性求和的总代价
	DurationMs   float64  `json:"duration_ms"`           // 算法耗时 (毫秒)
	NodesVisited int      `json:"nodes_visited"`         // 搜索扩展过的节点数
	ErrorKind    string   `json:"error_kind,omitempty"`  // 失败类别
	ErrorDetail  string   `json:"error_detail,omitempty"`
	Caveat       string   `json:"caveat,omitempty"`
}

// PathResponse 单算法路径规划响应
type PathResponse struct {
	Found   bool       `json:"found"`
	Result  AlgoResult `json:"result"`
	Nodes   []PathNode `json:"nodes,omitempty"` // 路径节点详情 (含坐标, 供前端画线)
	Message string     `json:"message,omitempty"`
}

// CompareResponse 多算法对比响应, 结果顺序与请求顺序一致
type CompareResponse struct {
	Results  []AlgoResult `json:"results"`
	Fastest  string       `json:"fastest,omitempty"`  // 耗时最短的算法
	Shortest string       `json:"shortest,omitempty"` // 总代价最小的算法
	Nodes    []PathNode   `json:"nodes,omitempty"`    // 最短路径的节点详情
	Message  string       `json:"message,omitempty"`
}

// toAlgoResult 把 ResultRecord 转成响应结构
func toAlgoResult(rec algo.ResultRecord) AlgoResult {
	return AlgoResult{
		Algorithm:    rec.Algorithm.String(),
		Found:        rec.OK,
		Path:         rec.Path,
		Distance:     rec.Distance,
		DurationMs:   float64(rec.Duration) / float64(time.Millisecond),
		NodesVisited: rec.NodesVisited,
		ErrorKind:    rec.ErrKind.String(),
		ErrorDetail:  rec.ErrMessage,
		Caveat:       rec.Caveat,
	}
}

// pathNodes 把节点 ID 序列补全成带坐标的节点详情
func pathNodes(path []string) []PathNode {
	nodes := make([]PathNode, 0, len(path))
	for _, nodeID := range path {
		node := Graph.Node(nodeID)
		if node != nil {
			nodes = append(nodes, PathNode{
				ID:   node.ID,
				Name: node.Name,
				Lat:  node.Lat,
				Lng:  node.Lng,
				Type: node.Type,
			})
		}
	}
	return nodes
}

// resolveEndpoints 解析起终点: 优先用 ID, 提供了坐标则吸附到最近节点
func resolveEndpoints(startID, endID string, startLat, startLng, endLat, endLng float64) (string, string, string) {
	if startLat != 0 && startLng != 0 {
		if nearest := Graph.FindNearestNode(startLat, startLng); nearest != nil {
			startID = nearest.ID
		}
	}
	if endLat != 0 && endLng != 0 {
		if nearest := Graph.FindNearestNode(endLat, endLng); nearest != nil {
			endID = nearest.ID
		}
	}

	if startID == "" || endID == "" {
		return "", "", "起点或终点未指定"
	}
	return startID, endID, ""
}

// parseOptions 解析权重属性和时限
func parseOptions(weight string, timeoutMs int) (algo.Options, error) {
	w, err := algo.ParseWeight(weight)
	if err != nil {
		return algo.Options{}, err
	}
	opts := algo.Options{Weight: w}
	if timeoutMs > 0 {
		opts.Timeout = time.Duration(timeoutMs) * time.Millisecond
	}
	return opts, nil
}

// FindPath 单算法路径规划接口
func FindPath(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	if Graph == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "地图数据未加载"})
		return
	}

	startID, endID, msg := resolveEndpoints(req.StartID, req.EndID, req.StartLat, req.StartLng, req.EndLat, req.EndLng)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	algorithm := req.Algorithm
	if algorithm == "" {
		algorithm = "dijkstra"
	}
	kind, err := algo.ParseAlgorithm(algorithm)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts, err := parseOptions(req.Weight, req.TimeoutMs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec := algo.RunSingle(Graph, startID, endID, kind, opts)

	// 起终点不在图中属于请求错误, 其余失败 (不可达/超时/负环) 属于正常业务结果
	if rec.ErrKind == algo.ErrKindInvalidEndpoint {
		c.JSON(http.StatusBadRequest, gin.H{"error": rec.ErrMessage})
		return
	}

	resp := PathResponse{
		Found:  rec.OK,
		Result: toAlgoResult(rec),
	}
	if rec.OK {
		resp.Nodes = pathNodes(rec.Path)
		resp.Message = "路径规划成功"
	} else {
		resp.Message = "未找到路径: " + rec.ErrMessage
	}
	c.JSON(http.StatusOK, resp)
}

// ComparePaths 多算法对比接口
// 每个请求的算法各占一条结果, 某个算法失败不影响其他算法
func ComparePaths(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	if Graph == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "地图数据未加载"})
		return
	}

	startID, endID, msg := resolveEndpoints(req.StartID, req.EndID, req.StartLat, req.StartLng, req.EndLat, req.EndLng)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	kinds := algo.AllAlgorithms
	if len(req.Algorithms) > 0 {
		kinds = make([]algo.AlgorithmKind, 0, len(req.Algorithms))
		for _, name := range req.Algorithms {
			kind, err := algo.ParseAlgorithm(name)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			kinds = append(kinds, kind)
		}
	}

	opts, err := parseOptions(req.Weight, req.TimeoutMs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set, err := algo.RunComparison(Graph, startID, endID, kinds, opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := CompareResponse{Results: make([]AlgoResult, 0, len(set))}
	for _, rec := range set {
		resp.Results = append(resp.Results, toAlgoResult(rec))
	}

	if fastest, ok := set.Fastest(); ok {
		resp.Fastest = fastest.Algorithm.String()
	}
	if shortest, ok := set.ShortestByDistance(); ok {
		resp.Shortest = shortest.Algorithm.String()
		resp.Nodes = pathNodes(shortest.Path)
		resp.Message = "对比完成"
	} else {
		resp.Message = "所有算法均未找到路径"
	}

	c.JSON(http.StatusOK, resp)
}

// GetNodes 获取所有节点信息
func GetNodes(c *gin.Context) {
	if Graph == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "地图数据未加载"})
		return
	}

	list := Graph.NodeList()
	nodes := make([]PathNode, 0, len(list))
	for _, node := range list {
		nodes = append(nodes, PathNode{
			ID:   node.ID,
			Name: node.Name,
			Lat:  node.Lat,
			Lng:  node.Lng,
			Type: node.Type,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(nodes),
		"nodes": nodes,
	})
}

// GetNodeByID 根据 ID 获取节点信息
func GetNodeByID(c *gin.Context) {
	nodeID := c.Param("id")

	if Graph == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "地图数据未加载"})
		return
	}

	node := Graph.Node(nodeID)
	if node == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "节点不存在"})
		return
	}

	c.JSON(http.StatusOK, PathNode{
		ID:   node.ID,
		Name: node.Name,
		Lat:  node.Lat,
		Lng:  node.Lng,
		Type: node.Type,
	})
}

// SearchNodes 搜索节点 (根据名称或 ID 模糊匹配, 不区分大小写)
func SearchNodes(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少搜索关键词"})
		return
	}

	if Graph == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "地图数据未加载"})
		return
	}

	lowered := strings.ToLower(query)
	results := make([]PathNode, 0)
	for _, node := range Graph.NodeList() {
		if strings.Contains(strings.ToLower(node.Name), lowered) ||
			strings.Contains(strings.ToLower(node.ID), lowered) {
			results = append(results, PathNode{
				ID:   node.ID,
				Name: node.Name,
				Lat:  node.Lat,
				Lng:  node.Lng,
				Type: node.Type,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}
