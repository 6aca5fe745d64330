package main

import (
	"fmt"
	"log"
	"os"

	"github.com/DhairyaSavaliya/Pathfinding-Algorithm-Visualizer/algo"
	"github.com/DhairyaSavaliya/Pathfinding-Algorithm-Visualizer/db"
	"github.com/DhairyaSavaliya/Pathfinding-Algorithm-Visualizer/handler"

	"github.com/gin-gonic/gin"
)

func main() {
	fmt.Println("=== Pathfinding Algorithm Visualizer - 最短路径算法对比系统 ===")

	// 1. 加载路网图
	// 默认: 初始化 PostgreSQL (第一次运行会自动导入 map_data.json), 再从数据库建图
	// 开发模式: MAP_FROM_JSON=1 跳过数据库, 直接读 JSON 文件
	var (
		graph *algo.Graph
		err   error
	)
	if os.Getenv("MAP_FROM_JSON") == "1" {
		fmt.Println("正在从 JSON 文件构建图...")
		graph, err = algo.LoadFromJSON(mapFile())
	} else {
		db.InitDB()
		fmt.Println("正在从数据库构建图...")
		graph, err = algo.LoadFromDB()
	}
	if err != nil {
		log.Fatalf("加载地图失败: %v", err)
	}
	fmt.Printf("地图加载成功! 节点数: %d\n", graph.NodeCount())

	// 2. 将图对象传递给 handler (用于路径规划接口)
	handler.Graph = graph

	// 3. 初始化 Gin 引擎并配置路由
	r := gin.Default()
	setupRoutes(r)

	// 4. 启动服务器
	addr := ":" + port()
	fmt.Println("\n服务器启动中...")
	fmt.Printf("访问地址: http://localhost%s\n", addr)
	fmt.Println("API 文档:")
	fmt.Println("  - POST   /api/login          - 用户登录")
	fmt.Println("  - POST   /api/register       - 用户注册")
	fmt.Println("  - POST   /api/path/find      - 单算法路径规划")
	fmt.Println("  - POST   /api/path/compare   - 多算法对比")
	fmt.Println("  - GET    /api/nodes          - 获取所有节点")
	fmt.Println("  - GET    /api/nodes/:id      - 获取指定节点")
	fmt.Println("  - GET    /api/nodes/search   - 搜索节点")
	fmt.Println("\n按 Ctrl+C 退出")

	if err := r.Run(addr); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}

func mapFile() string {
	if f := os.Getenv("MAP_DATA_FILE"); f != "" {
		return f
	}
	return "map_data.json"
}

func port() string {
	if p := os.Getenv("SERVER_PORT"); p != "" {
		return p
	}
	return "8080"
}

// setupRoutes 配置路由
func setupRoutes(r *gin.Engine) {
	// CORS 跨域中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// 静态文件服务 - 提供前端页面
	r.Static("/static", "./static")

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "ok",
		})
	})

	// 根路径重定向到前端页面
	r.GET("/", func(c *gin.Context) {
		c.Redirect(302, "/static/index.html")
	})

	// API 路由组
	api := r.Group("/api")
	{
		// 公开接口 (无需认证)
		api.POST("/login", handler.Login)
		api.POST("/register", handler.Register)

		// 地图相关接口
		api.POST("/path/find", handler.FindPath)
		api.POST("/path/compare", handler.ComparePaths)
		api.GET("/nodes", handler.GetNodes)
		api.GET("/nodes/search", handler.SearchNodes)
		api.GET("/nodes/:id", handler.GetNodeByID)

		// 需要认证的接口
		authorized := api.Group("/")
		authorized.Use(handler.AuthMiddleware())
		{
			authorized.GET("/me", handler.Me)
		}
	}
}
