package algo

import "context"

// bfsSearch 广度优先搜索, 寻找跳数最少的路径
//
// 完全忽略边权, 找到的是经过路口最少的路线, 不保证距离最短
// (总代价由调用方拿到路径后按真实权重另行计算)
func bfsSearch(ctx context.Context, g *Graph, startID, endID string, _ WeightKind) ([]string, int, error) {
	prev := make(map[string]string)
	visited := make(map[string]bool, g.NodeCount())
	expanded := 0

	queue := []string{startID}
	visited[startID] = true

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, expanded, err
		}

		currentID := queue[0]
		queue = queue[1:]
		expanded++

		if currentID == endID {
			return rebuildPath(prev, startID, endID), expanded, nil
		}

		for _, edge := range g.adj[currentID] {
			if visited[edge.To] {
				continue
			}
			visited[edge.To] = true
			prev[edge.To] = currentID
			queue = append(queue, edge.To)
		}
	}

	return nil, expanded, ErrNoPath
}
