package algo

import (
	"container/heap"
	"context"

	"github.com/DhairyaSavaliya/Pathfinding-Algorithm-Visualizer/model"
	"github.com/DhairyaSavaliya/Pathfinding-Algorithm-Visualizer/utils"
)

// heuristic A* 的启发函数: 节点到终点的直线 (大圆) 距离
//
// 优化距离时直接用米, 球面直线不可能比沿路走更长, 启发值可采纳,
// 最优性有保证; 优化时间时把直线距离除以全图最高速度折算成秒,
// 同样不会高估剩余时间 (没有任何一段路能开得比全图最高速度还快),
// 图里没有速度信息时退化为 0, 等价于 Dijkstra
func heuristic(g *Graph, node *model.Node, end *model.Node, w WeightKind) float64 {
	straight := utils.HaversineDistance(
		model.Point{Lat: node.Lat, Lng: node.Lng},
		model.Point{Lat: end.Lat, Lng: end.Lng},
	)
	if w == WeightTime {
		if g.maxSpeed <= 0 {
			return 0
		}
		return straight / g.maxSpeed
	}
	return straight
}

// astarSearch A* 算法寻找加权最短路径
// 与 Dijkstra 的唯一区别是出队优先级加上了启发值 f = g + h
func astarSearch(ctx context.Context, g *Graph, startID, endID string, w WeightKind) ([]string, int, error) {
	end := g.nodes[endID]

	gScore := make(map[string]float64, g.NodeCount())
	prev := make(map[string]string)
	visited := make(map[string]bool)
	expanded := 0

	gScore[startID] = 0

	pq := make(PriorityQueue, 0)
	heap.Init(&pq)
	heap.Push(&pq, &PriorityQueueItem{
		NodeID:   startID,
		Priority: heuristic(g, g.nodes[startID], end, w),
	})

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, expanded, err
		}

		current := heap.Pop(&pq).(*PriorityQueueItem)
		currentID := current.NodeID

		if visited[currentID] {
			continue
		}
		visited[currentID] = true
		expanded++

		if currentID == endID {
			break
		}

		for _, edge := range g.adj[currentID] {
			neighborID := edge.To
			if visited[neighborID] {
				continue
			}

			wgt := edgeWeight(edge, w)
			if err := checkWeight(wgt, currentID, neighborID); err != nil {
				return nil, expanded, err
			}

			tentative := gScore[currentID] + wgt
			if old, ok := gScore[neighborID]; !ok || tentative < old {
				gScore[neighborID] = tentative
				prev[neighborID] = currentID
				heap.Push(&pq, &PriorityQueueItem{
					NodeID:   neighborID,
					Cost:     tentative,
					Priority: tentative + heuristic(g, g.nodes[neighborID], end, w),
				})
			}
		}
	}

	if !visited[endID] {
		return nil, expanded, ErrNoPath
	}

	return rebuildPath(prev, startID, endID), expanded, nil
}
