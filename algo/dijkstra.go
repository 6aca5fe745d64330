package algo

import (
	"container/heap"
	"context"
	"fmt"
	"math"
)

// PriorityQueueItem 优先队列中的元素
type PriorityQueueItem struct {
	NodeID   string
	Cost     float64 // 累计代价 (Dijkstra) 或 f = g + h (A*)
	Priority float64 // 出队优先级, Dijkstra 里等于 Cost
	Index    int     // 在堆中的索引
}

// PriorityQueue 实现 heap.Interface 接口的优先队列
type PriorityQueue []*PriorityQueueItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	return pq[i].Priority < pq[j].Priority
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*PriorityQueueItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // 避免内存泄漏
	item.Index = -1 // 标记为已移除
	*pq = old[0 : n-1]
	return item
}

// checkWeight 加权算法的权重合法性检查
// Dijkstra 和 A* 不允许负权 (负权路网交给 Bellman-Ford)
func checkWeight(wgt float64, from, to string) error {
	if math.IsNaN(wgt) {
		return fmt.Errorf("边 %s->%s 的权重非法 (NaN)", from, to)
	}
	if wgt < 0 {
		return fmt.Errorf("边 %s->%s 的权重为负 (%.2f), 请改用 bellman-ford", from, to, wgt)
	}
	return nil
}

// dijkstraSearch Dijkstra 算法寻找加权最短路径
// 遍历状态 (距离表、前驱表、访问标记) 全部是本次调用的局部变量, 不碰图本身
func dijkstraSearch(ctx context.Context, g *Graph, startID, endID string, w WeightKind) ([]string, int, error) {
	dist := make(map[string]float64, g.NodeCount())
	prev := make(map[string]string)
	visited := make(map[string]bool)
	expanded := 0

	dist[startID] = 0

	pq := make(PriorityQueue, 0)
	heap.Init(&pq)
	heap.Push(&pq, &PriorityQueueItem{NodeID: startID})

	for pq.Len() > 0 {
		// 响应调用方的时限
		if err := ctx.Err(); err != nil {
			return nil, expanded, err
		}

		current := heap.Pop(&pq).(*PriorityQueueItem)
		currentID := current.NodeID

		// 懒删除: 已敲定的节点跳过
		if visited[currentID] {
			continue
		}
		visited[currentID] = true
		expanded++

		// 到达终点提前退出
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

			newCost := dist[currentID] + wgt
			if old, ok := dist[neighborID]; !ok || newCost < old {
				dist[neighborID] = newCost
				prev[neighborID] = currentID
				heap.Push(&pq, &PriorityQueueItem{
					NodeID:   neighborID,
					Cost:     newCost,
					Priority: newCost,
				})
			}
		}
	}

	if !visited[endID] {
		return nil, expanded, ErrNoPath
	}

	return rebuildPath(prev, startID, endID), expanded, nil
}
