package db

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/DhairyaSavaliya/Pathfinding-Algorithm-Visualizer/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	// 从环境变量读取配置 (为了 Docker 部署方便)
	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "pathuser")
	password := getEnvOrDefault("DB_PASSWORD", "pathpassword")
	dbname := getEnvOrDefault("DB_NAME", "pathviz")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	// 带重试的数据库连接 (Docker 启动时数据库可能还没准备好)
	var err error
	maxRetries := 30
	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		log.Printf("等待数据库就绪... (%d/%d): %v", i+1, maxRetries, err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("无法连接数据库: %v", err)
	}

	// 自动迁移模式 (自动创建表结构)
	err = DB.AutoMigrate(&model.User{}, &model.Node{}, &model.Edge{})
	if err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	// 检查是否需要导入初始数据
	var nodeCount int64
	DB.Model(&model.Node{}).Count(&nodeCount)
	if nodeCount == 0 {
		seedFile := getEnvOrDefault("MAP_DATA_FILE", "map_data.json")
		log.Printf("检测到数据库为空, 正在导入 %s...", seedFile)
		if err := importMapData(seedFile); err != nil {
			log.Printf("警告: 导入地图数据失败: %v", err)
		} else {
			log.Println("地图数据导入成功!")
		}
	}

	log.Println("数据库连接并初始化成功!")
}

// getEnvOrDefault 获取环境变量, 如果不存在则返回默认值
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// importMapData 从 JSON 文件导入地图数据到数据库
func importMapData(filepath string) error {
	file, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}

	var data model.MapData
	if err := json.Unmarshal(file, &data); err != nil {
		return fmt.Errorf("解析 JSON 失败: %w", err)
	}

	// 批量插入节点
	if len(data.Nodes) > 0 {
		if err := DB.CreateInBatches(data.Nodes, 100).Error; err != nil {
			return fmt.Errorf("插入节点失败: %w", err)
		}
		log.Printf("导入了 %d 个节点", len(data.Nodes))
	}

	// 批量插入边 (Highway 列表走 pq.StringArray 存成 text[])
	if len(data.Edges) > 0 {
		if err := DB.CreateInBatches(data.Edges, 100).Error; err != nil {
			return fmt.Errorf("插入边失败: %w", err)
		}
		log.Printf("导入了 %d 条边", len(data.Edges))
	}

	return nil
}
