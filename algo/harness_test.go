package algo

import (
	"fmt"
	"testing"
	"time"

	"github.com/DhairyaSavaliya/Pathfinding-Algorithm-Visualizer/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// e 构造一条单向测试边 (抽象图, 不依赖坐标)
func e(from, to string, dist float64) model.Edge {
	return model.Edge{From: from, To: to, Dist: dist, Oneway: true}
}

// buildGraph 用给定节点和边构建测试图, 节点坐标全为 0 (启发值为 0)
func buildGraph(t *testing.T, nodeIDs []string, edges []model.Edge) *Graph {
	t.Helper()
	g := NewGraph()
	for _, id := range nodeIDs {
		g.AddNode(&model.Node{ID: id, Name: id})
	}
	for i := range edges {
		require.NoError(t, g.AddEdge(&edges[i]))
	}
	return g
}

// 四节点环: A→B→C→D→A, 每条边权重 1
func cycleGraph(t *testing.T) *Graph {
	return buildGraph(t, []string{"A", "B", "C", "D"}, []model.Edge{
		e("A", "B", 1), e("B", "C", 1), e("C", "D", 1), e("D", "A", 1),
	})
}

func TestDijkstraOnCycle(t *testing.T) {
	g := cycleGraph(t)

	rec := RunSingle(g, "A", "C", AlgoDijkstra, Options{})
	require.True(t, rec.OK, "错误: %s", rec.ErrMessage)
	assert.Equal(t, []string{"A", "B", "C"}, rec.Path)
	assert.InDelta(t, 2, rec.Distance, 1e-9)
	assert.Greater(t, rec.NodesVisited, 0)
	assert.Equal(t, ErrKindNone, rec.ErrKind)
}

func TestBFSOnCycle(t *testing.T) {
	g := cycleGraph(t)

	rec := RunSingle(g, "A", "C", AlgoBFS, Options{})
	require.True(t, rec.OK)
	assert.Equal(t, []string{"A", "B", "C"}, rec.Path)
	// BFS 不看权重, 但记录里的总代价按真实权重求和
	assert.InDelta(t, 2, rec.Distance, 1e-9)
}

func TestBFSFewestHopsNotShortestDistance(t *testing.T) {
	// 直连边很长, 绕行两跳更短: BFS 选跳数少的, Dijkstra 选距离短的
	g := buildGraph(t, []string{"A", "B", "C"}, []model.Edge{
		e("A", "B", 1), e("B", "C", 1), e("A", "C", 10),
	})

	bfs := RunSingle(g, "A", "C", AlgoBFS, Options{})
	require.True(t, bfs.OK)
	assert.Equal(t, []string{"A", "C"}, bfs.Path)
	assert.InDelta(t, 10, bfs.Distance, 1e-9)

	dij := RunSingle(g, "A", "C", AlgoDijkstra, Options{})
	require.True(t, dij.OK)
	assert.Equal(t, []string{"A", "B", "C"}, dij.Path)
	assert.InDelta(t, 2, dij.Distance, 1e-9)

	// 跳数最优性: BFS 的节点数不会多于任何其他算法找到的路径
	assert.LessOrEqual(t, len(bfs.Path), len(dij.Path))
}

func TestBellmanFordMatchesDijkstraWithoutNegativeEdges(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C", "D", "E"}, []model.Edge{
		e("A", "B", 4), e("A", "C", 2), e("C", "B", 1),
		e("B", "D", 5), e("C", "D", 8), e("D", "E", 1), e("B", "E", 7),
	})

	dij := RunSingle(g, "A", "E", AlgoDijkstra, Options{})
	bf := RunSingle(g, "A", "E", AlgoBellmanFord, Options{})
	require.True(t, dij.OK)
	require.True(t, bf.OK)
	assert.InDelta(t, dij.Distance, bf.Distance, 1e-9)
	assert.Equal(t, dij.Path, bf.Path)
}

func TestBellmanFordAcceptsNegativeEdges(t *testing.T) {
	// 负权边但无负环: Bellman-Ford 照常工作, Dijkstra 拒绝执行
	g := buildGraph(t, []string{"A", "B", "C"}, []model.Edge{
		e("A", "B", 5), e("A", "C", 2), e("C", "B", -1),
	})

	bf := RunSingle(g, "A", "B", AlgoBellmanFord, Options{})
	require.True(t, bf.OK, "错误: %s", bf.ErrMessage)
	assert.Equal(t, []string{"A", "C", "B"}, bf.Path)
	assert.InDelta(t, 1, bf.Distance, 1e-9)

	dij := RunSingle(g, "A", "B", AlgoDijkstra, Options{})
	require.False(t, dij.OK)
	assert.Equal(t, ErrKindAlgorithm, dij.ErrKind)
}

func TestBellmanFordDetectsNegativeCycle(t *testing.T) {
	// 环 A→B→C→D→A 里 D→A 改成 -10, 总和为负: 必须报负环而不是返回路径
	g := buildGraph(t, []string{"A", "B", "C", "D"}, []model.Edge{
		e("A", "B", 1), e("B", "C", 1), e("C", "D", 1), e("D", "A", -10),
	})

	rec := RunSingle(g, "A", "C", AlgoBellmanFord, Options{})
	require.False(t, rec.OK)
	assert.Equal(t, ErrKindNegativeCycle, rec.ErrKind)
	assert.Empty(t, rec.Path)
}

func TestInvalidEndpoint(t *testing.T) {
	g := cycleGraph(t)

	for _, kind := range AllAlgorithms {
		rec := RunSingle(g, "A", "ghost", kind, Options{})
		require.False(t, rec.OK, "算法 %s 不应成功", kind)
		assert.Equal(t, ErrKindInvalidEndpoint, rec.ErrKind)

		rec = RunSingle(g, "ghost", "A", kind, Options{})
		assert.Equal(t, ErrKindInvalidEndpoint, rec.ErrKind)
	}
}

func TestEqualEndpoints(t *testing.T) {
	g := cycleGraph(t)

	for _, kind := range AllAlgorithms {
		rec := RunSingle(g, "B", "B", kind, Options{})
		require.True(t, rec.OK, "算法 %s 应成功", kind)
		assert.Equal(t, []string{"B"}, rec.Path)
		assert.Zero(t, rec.Distance)
	}
}

func TestDisconnectedGraphAllFail(t *testing.T) {
	// 两个连通分量, 起终点各在一边
	g := buildGraph(t, []string{"A", "B", "C", "D"}, []model.Edge{
		e("A", "B", 1), e("C", "D", 1),
	})

	set, err := RunComparison(g, "A", "C", AllAlgorithms, Options{})
	require.NoError(t, err)
	require.Len(t, set, len(AllAlgorithms))

	for i, rec := range set {
		assert.Equal(t, AllAlgorithms[i], rec.Algorithm, "结果顺序必须与请求顺序一致")
		assert.False(t, rec.OK)
		assert.Equal(t, ErrKindNoPath, rec.ErrKind)
	}

	_, ok := set.Fastest()
	assert.False(t, ok)
	_, ok = set.ShortestByDistance()
	assert.False(t, ok)
}

func TestComparisonIsolatesFailures(t *testing.T) {
	// 带负环的图: Bellman-Ford 必须报负环, 其余算法到达 C 之前
	// 根本不会碰到那条负权边, 照常成功, 一个算法的失败不影响
	// 其他算法, 四条记录一条不少且顺序保持
	g := buildGraph(t, []string{"A", "B", "C", "D"}, []model.Edge{
		e("A", "B", 1), e("B", "C", 1), e("C", "D", 1), e("D", "A", -10),
	})

	set, err := RunComparison(g, "A", "C", AllAlgorithms, Options{})
	require.NoError(t, err)
	require.Len(t, set, 4)
	for i, rec := range set {
		assert.Equal(t, AllAlgorithms[i], rec.Algorithm, "结果顺序必须与请求顺序一致")
	}

	assert.True(t, set[0].OK) // dijkstra
	assert.True(t, set[1].OK) // astar
	assert.True(t, set[2].OK) // bfs
	assert.Equal(t, []string{"A", "B", "C"}, set[2].Path)
	require.False(t, set[3].OK) // bellman-ford 做全图松弛, 必然撞上负环
	assert.Equal(t, ErrKindNegativeCycle, set[3].ErrKind)

	// 失败的记录不参与胜者评选; 距离并列时取请求顺序靠前的
	fastest, ok := set.Fastest()
	require.True(t, ok)
	assert.True(t, fastest.OK)
	shortest, ok := set.ShortestByDistance()
	require.True(t, ok)
	assert.Equal(t, AlgoDijkstra, shortest.Algorithm)
}

func TestRunComparisonValidation(t *testing.T) {
	g := cycleGraph(t)

	_, err := RunComparison(g, "A", "C", nil, Options{})
	assert.Error(t, err)

	_, err = RunComparison(g, "A", "C", []AlgorithmKind{AlgoDijkstra, AlgoBFS, AlgoDijkstra}, Options{})
	assert.Error(t, err)
}

func TestWeightTimePrefersFasterRoad(t *testing.T) {
	// 直连路短但慢, 绕行路长但快: 按距离和按时间优化给出不同路线
	g := NewGraph()
	for _, id := range []string{"A", "B", "C"} {
		g.AddNode(&model.Node{ID: id})
	}
	edges := []model.Edge{
		{From: "A", To: "B", Dist: 500, Speed: 10, Oneway: true},   // 180 秒
		{From: "A", To: "C", Dist: 1000, Speed: 100, Oneway: true}, // 36 秒
		{From: "C", To: "B", Dist: 1000, Speed: 100, Oneway: true}, // 36 秒
	}
	for i := range edges {
		require.NoError(t, g.AddEdge(&edges[i]))
	}

	byDist := RunSingle(g, "A", "B", AlgoDijkstra, Options{Weight: WeightDistance})
	require.True(t, byDist.OK)
	assert.Equal(t, []string{"A", "B"}, byDist.Path)
	assert.InDelta(t, 500, byDist.Distance, 1e-9)

	byTime := RunSingle(g, "A", "B", AlgoDijkstra, Options{Weight: WeightTime})
	require.True(t, byTime.OK)
	assert.Equal(t, []string{"A", "C", "B"}, byTime.Path)
	assert.InDelta(t, 72, byTime.Distance, 1e-6)
}

// 真实坐标的小路网, 边长由 Haversine 自动计算
func geoGraph(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	nodes := []model.Node{
		{ID: "S", Name: "start", Lat: 37.7894, Lng: -122.4016},
		{ID: "M", Name: "mid", Lat: 37.7873, Lng: -122.4039},
		{ID: "T", Name: "target", Lat: 37.7849, Lng: -122.4067},
		{ID: "D", Name: "detour", Lat: 37.7955, Lng: -122.3937},
	}
	for i := range nodes {
		g.AddNode(&nodes[i])
	}
	edges := []model.Edge{
		e("S", "M", 0), e("M", "T", 0), // 顺路
		e("S", "D", 0), e("D", "T", 0), // 大幅绕行
	}
	for i := range edges {
		require.NoError(t, g.AddEdge(&edges[i]))
	}
	return g
}

func TestAStarOptimalOnGeoGraph(t *testing.T) {
	g := geoGraph(t)

	astar := RunSingle(g, "S", "T", AlgoAStar, Options{Weight: WeightDistance})
	require.True(t, astar.OK, "错误: %s", astar.ErrMessage)
	assert.Equal(t, []string{"S", "M", "T"}, astar.Path)
	assert.Empty(t, astar.Caveat)

	// 启发式不改变最优性: 与 Dijkstra 的总距离一致
	dij := RunSingle(g, "S", "T", AlgoDijkstra, Options{Weight: WeightDistance})
	require.True(t, dij.OK)
	assert.InDelta(t, dij.Distance, astar.Distance, 1e-6)
}

func TestAStarTimeWeightCarriesCaveat(t *testing.T) {
	g := geoGraph(t)

	rec := RunSingle(g, "S", "T", AlgoAStar, Options{Weight: WeightTime})
	require.True(t, rec.OK)
	assert.NotEmpty(t, rec.Caveat)

	// 时间启发按全图最高速度折算, 仍是可采纳的: 结果与 Dijkstra 一致
	dij := RunSingle(g, "S", "T", AlgoDijkstra, Options{Weight: WeightTime})
	require.True(t, dij.OK)
	assert.InDelta(t, dij.Distance, rec.Distance, 1e-6)
}

func TestTimeoutProducesWellFormedRecord(t *testing.T) {
	// 长链式图 + 1 纳秒时限: 时限必然在搜索过程中到期,
	// 返回的仍是一条完整记录而不是悬挂或 panic
	const chainLen = 5000
	ids := make([]string, 0, chainLen)
	edges := make([]model.Edge, 0, chainLen-1)
	prev := ""
	for i := 0; i < chainLen; i++ {
		id := fmt.Sprintf("v%04d", i)
		ids = append(ids, id)
		if prev != "" {
			edges = append(edges, e(prev, id, 1))
		}
		prev = id
	}
	g := buildGraph(t, ids, edges)

	for _, kind := range AllAlgorithms {
		rec := RunSingle(g, ids[0], ids[len(ids)-1], kind, Options{Timeout: time.Nanosecond})
		require.False(t, rec.OK, "算法 %s 不应在 1ns 内完成", kind)
		assert.Equal(t, ErrKindTimeout, rec.ErrKind)
		assert.NotEmpty(t, rec.ErrMessage)
		assert.GreaterOrEqual(t, rec.Duration, time.Duration(0))
	}
}

func TestFastestAndShortestTieBreakByRequestOrder(t *testing.T) {
	set := ComparisonSet{
		{Algorithm: AlgoBFS, OK: false, Duration: time.Millisecond, Distance: 0},
		{Algorithm: AlgoDijkstra, OK: true, Duration: 5 * time.Millisecond, Distance: 2},
		{Algorithm: AlgoAStar, OK: true, Duration: 5 * time.Millisecond, Distance: 2},
	}

	fastest, ok := set.Fastest()
	require.True(t, ok)
	assert.Equal(t, AlgoDijkstra, fastest.Algorithm, "并列时取请求顺序靠前的")

	shortest, ok := set.ShortestByDistance()
	require.True(t, ok)
	assert.Equal(t, AlgoDijkstra, shortest.Algorithm)
}
