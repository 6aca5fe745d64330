package algo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/DhairyaSavaliya/Pathfinding-Algorithm-Visualizer/model"
)

// AlgorithmKind 可选的寻路算法 (封闭枚举)
type AlgorithmKind int

const (
	AlgoDijkstra    AlgorithmKind = iota // 加权最短路
	AlgoAStar                            // 带启发的加权最短路
	AlgoBFS                              // 最少跳数 (忽略权重)
	AlgoBellmanFord                      // 加权最短路, 可处理负权并检测负环
)

// AllAlgorithms 全部算法, 对比模式的默认执行顺序
var AllAlgorithms = []AlgorithmKind{AlgoDijkstra, AlgoAStar, AlgoBFS, AlgoBellmanFord}

func (k AlgorithmKind) String() string {
	switch k {
	case AlgoDijkstra:
		return "dijkstra"
	case AlgoAStar:
		return "astar"
	case AlgoBFS:
		return "bfs"
	case AlgoBellmanFord:
		return "bellman-ford"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ParseAlgorithm 解析算法名 (接受常见别名)
func ParseAlgorithm(name string) (AlgorithmKind, error) {
	switch name {
	case "dijkstra":
		return AlgoDijkstra, nil
	case "astar", "a*", "a-star":
		return AlgoAStar, nil
	case "bfs":
		return AlgoBFS, nil
	case "bellman-ford", "bellman_ford", "bellmanford":
		return AlgoBellmanFord, nil
	default:
		return 0, fmt.Errorf("未知的算法: %q", name)
	}
}

// WeightKind 加权算法优化的边属性
type WeightKind int

const (
	WeightDistance WeightKind = iota // 距离 (米)
	WeightTime                       // 通行时间 (秒)
)

func (w WeightKind) String() string {
	if w == WeightTime {
		return "time"
	}
	return "dist"
}

// ParseWeight 解析权重属性名
func ParseWeight(name string) (WeightKind, error) {
	switch name {
	case "", "dist", "distance", "length":
		return WeightDistance, nil
	case "time", "travel_time":
		return WeightTime, nil
	default:
		return 0, fmt.Errorf("未知的权重属性: %q", name)
	}
}

// ErrKind 失败类别 (封闭枚举, 见 ResultRecord.ErrKind)
type ErrKind int

const (
	ErrKindNone            ErrKind = iota
	ErrKindInvalidEndpoint         // 起点或终点不在图中
	ErrKindNoPath                  // 搜索完毕仍不可达
	ErrKindNegativeCycle           // Bellman-Ford 检测到可达负环
	ErrKindAlgorithm               // 算法内部错误 (如非法权重)
	ErrKindTimeout                 // 超过调用方设定的时限
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNone:
		return ""
	case ErrKindInvalidEndpoint:
		return "invalid_endpoint"
	case ErrKindNoPath:
		return "no_path_found"
	case ErrKindNegativeCycle:
		return "negative_cycle_detected"
	case ErrKindAlgorithm:
		return "algorithm_error"
	case ErrKindTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// 算法实现返回的哨兵错误, 由 RunSingle 统一翻译成 ErrKind
var (
	ErrNoPath        = errors.New("不存在可达路径")
	ErrNegativeCycle = errors.New("检测到可达的负权环")
)

// Options 单次查询的可选项
type Options struct {
	Weight  WeightKind    // 加权算法优化并用于事后求和的边属性
	Timeout time.Duration // 单个算法的时限, 0 表示不限
}

// ResultRecord 一次算法执行的完整结果, 构造后不再修改
// 无论成功失败都会产生一条记录, 失败时 OK=false 且 Duration
// 记录到失败发生为止的耗时
type ResultRecord struct {
	Algorithm    AlgorithmKind // 执行的算法
	Path         []string      // 路径节点 ID 序列 (失败时为空)
	Distance     float64       // 沿路径对权重属性逐边求和的总代价
	Duration     time.Duration // 算法耗时 (单调时钟)
	NodesVisited int           // 搜索扩展过的节点数
	OK           bool          // 是否成功
	ErrKind      ErrKind       // 失败类别
	ErrMessage   string        // 失败详情
	Caveat       string        // 附加说明 (如 A* 时间启发的近似性)
}

// ComparisonSet 一次多算法对比的结果集合, 顺序与请求顺序一致
// 失败的算法同样占一条记录, 不会被静默丢弃
type ComparisonSet []ResultRecord

// searchFunc 所有算法实现共用的签名
// 返回路径节点序列、扩展节点数和错误
type searchFunc func(ctx context.Context, g *Graph, startID, endID string, w WeightKind) ([]string, int, error)

// searchFor 按算法枚举值取实现, 覆盖全部枚举项
func searchFor(kind AlgorithmKind) (searchFunc, error) {
	switch kind {
	case AlgoDijkstra:
		return dijkstraSearch, nil
	case AlgoAStar:
		return astarSearch, nil
	case AlgoBFS:
		return bfsSearch, nil
	case AlgoBellmanFord:
		return bellmanFordSearch, nil
	default:
		return nil, fmt.Errorf("未知的算法枚举值: %d", int(kind))
	}
}

// RunSingle 执行单个算法并测量耗时, 任何失败都转成记录返回, 绝不向外抛异常
//
// 总代价 Distance 不用算法自己报告的数值, 而是拿到路径后重新对
// 权重属性逐边求和, BFS 按跳数选路, 但记录里的代价仍然按真实
// 权重计算, 这样四个算法的数字才有可比性
func RunSingle(g *Graph, startID, endID string, kind AlgorithmKind, opts Options) ResultRecord {
	rec := ResultRecord{Algorithm: kind}

	if !g.HasNode(startID) || !g.HasNode(endID) {
		rec.ErrKind = ErrKindInvalidEndpoint
		rec.ErrMessage = fmt.Sprintf("起点 %q 或终点 %q 不在图中", startID, endID)
		return rec
	}

	// 起终点相同: 所有算法都返回单节点零代价路径
	if startID == endID {
		rec.Path = []string{startID}
		rec.OK = true
		return rec
	}

	fn, err := searchFor(kind)
	if err != nil {
		rec.ErrKind = ErrKindAlgorithm
		rec.ErrMessage = err.Error()
		return rec
	}

	ctx := context.Background()
	cancel := func() {}
	if opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
	}
	defer cancel()

	start := time.Now()
	path, visited, err := invoke(ctx, fn, g, startID, endID, opts.Weight)
	rec.Duration = time.Since(start)
	rec.NodesVisited = visited

	if err != nil {
		rec.ErrKind = classify(err)
		rec.ErrMessage = err.Error()
		return rec
	}

	dist, err := pathWeight(g, path, opts.Weight)
	if err != nil {
		rec.ErrKind = ErrKindAlgorithm
		rec.ErrMessage = err.Error()
		return rec
	}

	rec.Path = path
	rec.Distance = dist
	rec.OK = true
	if kind == AlgoAStar && opts.Weight == WeightTime {
		rec.Caveat = "时间权重的启发值按全图最高速度折算, 速度信息缺失时退化为 Dijkstra"
	}
	return rec
}

// invoke 执行算法实现, 把意外 panic 也转成错误
func invoke(ctx context.Context, fn searchFunc, g *Graph, startID, endID string, w WeightKind) (path []string, visited int, err error) {
	defer func() {
		if r := recover(); r != nil {
			path = nil
			err = fmt.Errorf("算法内部异常: %v", r)
		}
	}()
	return fn(ctx, g, startID, endID, w)
}

// classify 把算法错误翻译成失败类别
func classify(err error) ErrKind {
	switch {
	case errors.Is(err, ErrNoPath):
		return ErrKindNoPath
	case errors.Is(err, ErrNegativeCycle):
		return ErrKindNegativeCycle
	case errors.Is(err, context.DeadlineExceeded):
		return ErrKindTimeout
	default:
		return ErrKindAlgorithm
	}
}

// RunComparison 按给定顺序依次执行多个算法, 每个算法一条记录
// 各算法之间互不影响: 某个算法失败不会中断后续算法
// kinds 必须非空且不含重复项, 否则整个请求拒绝执行
func RunComparison(g *Graph, startID, endID string, kinds []AlgorithmKind, opts Options) (ComparisonSet, error) {
	if len(kinds) == 0 {
		return nil, errors.New("算法列表不能为空")
	}
	seen := make(map[AlgorithmKind]bool, len(kinds))
	for _, k := range kinds {
		if seen[k] {
			return nil, fmt.Errorf("算法列表包含重复项: %s", k)
		}
		seen[k] = true
	}

	set := make(ComparisonSet, 0, len(kinds))
	for _, k := range kinds {
		set = append(set, RunSingle(g, startID, endID, k, opts))
	}
	return set, nil
}

// Fastest 返回耗时最短的成功记录, 没有成功记录时 ok=false
// 并列时取请求顺序靠前的一条
func (s ComparisonSet) Fastest() (ResultRecord, bool) {
	best := -1
	for i, rec := range s {
		if !rec.OK {
			continue
		}
		if best < 0 || rec.Duration < s[best].Duration {
			best = i
		}
	}
	if best < 0 {
		return ResultRecord{}, false
	}
	return s[best], true
}

// ShortestByDistance 返回总代价最小的成功记录, 没有成功记录时 ok=false
// 并列时取请求顺序靠前的一条
func (s ComparisonSet) ShortestByDistance() (ResultRecord, bool) {
	best := -1
	for i, rec := range s {
		if !rec.OK {
			continue
		}
		if best < 0 || rec.Distance < s[best].Distance {
			best = i
		}
	}
	if best < 0 {
		return ResultRecord{}, false
	}
	return s[best], true
}

// edgeWeight 按权重属性取边的代价
func edgeWeight(e *model.Edge, w WeightKind) float64 {
	if w == WeightTime {
		return e.TravelTime
	}
	return e.Dist
}

// minEdge 在 from 的出边里找通往 to 的最小权边
// 平行边 (同一对路口之间的多条路) 取代价最小的一条
func minEdge(g *Graph, from, to string, w WeightKind) *model.Edge {
	var best *model.Edge
	for _, e := range g.adj[from] {
		if e.To != to {
			continue
		}
		if best == nil || edgeWeight(e, w) < edgeWeight(best, w) {
			best = e
		}
	}
	return best
}

// pathWeight 对路径逐边求和, 得到可跨算法比较的总代价
func pathWeight(g *Graph, path []string, w WeightKind) (float64, error) {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		e := minEdge(g, path[i], path[i+1], w)
		if e == nil {
			return 0, fmt.Errorf("路径中 %s->%s 之间不存在边", path[i], path[i+1])
		}
		wgt := edgeWeight(e, w)
		if math.IsNaN(wgt) {
			return 0, fmt.Errorf("边 %s->%s 的权重非法 (NaN)", path[i], path[i+1])
		}
		total += wgt
	}
	return total, nil
}

// rebuildPath 沿前驱表从终点回溯出完整路径
func rebuildPath(prev map[string]string, startID, endID string) []string {
	path := []string{}
	for at := endID; at != ""; {
		path = append(path, at)
		if at == startID {
			break
		}
		at = prev[at]
	}
	slices.Reverse(path)
	return path
}
