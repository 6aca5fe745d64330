package algo

import (
	"fmt"
	"log"

	"github.com/DhairyaSavaliya/Pathfinding-Algorithm-Visualizer/db"
	"github.com/DhairyaSavaliya/Pathfinding-Algorithm-Visualizer/model"
)

// LoadFromDB 从数据库读出节点和边, 构建内存中的路网图
// 必须先调用 db.InitDB
func LoadFromDB() (*Graph, error) {
	var nodes []model.Node
	if err := db.DB.Find(&nodes).Error; err != nil {
		return nil, fmt.Errorf("读取节点失败: %w", err)
	}

	var edges []model.Edge
	if err := db.DB.Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("读取边失败: %w", err)
	}

	g := NewGraph()
	for i := range nodes {
		g.AddNode(&nodes[i])
	}

	skipped := 0
	for i := range edges {
		if err := g.AddEdge(&edges[i]); err != nil {
			skipped++
		}
	}
	if skipped > 0 {
		log.Printf("警告: 跳过了 %d 条端点缺失的边", skipped)
	}

	return g, nil
}
