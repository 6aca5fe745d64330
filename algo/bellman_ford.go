package algo

import (
	"context"
	"fmt"
	"math"
)

// bellmanFordSearch Bellman-Ford 算法寻找加权最短路径
//
// 比 Dijkstra 慢但允许负权边: 做 |V|-1 轮全图松弛, 之后若还有
// 从起点可达的边能继续松弛, 说明存在负权环, "最短路"无定义,
// 必须报 ErrNegativeCycle 而不是带着一条能无限变短的路径返回
func bellmanFordSearch(ctx context.Context, g *Graph, startID, endID string, w WeightKind) ([]string, int, error) {
	// dist 里只记从起点可达的节点, 没出现即视为无穷大
	dist := map[string]float64{startID: 0}
	prev := make(map[string]string)

	n := g.NodeCount()
	for round := 0; round < n-1; round++ {
		if err := ctx.Err(); err != nil {
			return nil, len(dist), err
		}

		changed := false
		for from, edges := range g.adj {
			d, ok := dist[from]
			if !ok {
				continue // 起点不可达的边不参与松弛
			}
			for _, edge := range edges {
				wgt := edgeWeight(edge, w)
				if math.IsNaN(wgt) {
					return nil, len(dist), fmt.Errorf("边 %s->%s 的权重非法 (NaN)", from, edge.To)
				}
				nd := d + wgt
				if old, ok := dist[edge.To]; !ok || nd < old {
					dist[edge.To] = nd
					prev[edge.To] = from
					changed = true
				}
			}
		}
		// 一轮下来没有任何改进, 已经收敛
		if !changed {
			break
		}
	}

	// 负环检测: 再做一轮, 还能松弛就说明有可达负环
	for from, edges := range g.adj {
		d, ok := dist[from]
		if !ok {
			continue
		}
		for _, edge := range edges {
			if old, ok := dist[edge.To]; !ok || d+edgeWeight(edge, w) < old {
				return nil, len(dist), ErrNegativeCycle
			}
		}
	}

	if _, ok := dist[endID]; !ok {
		return nil, len(dist), ErrNoPath
	}

	return rebuildPath(prev, startID, endID), len(dist), nil
}
