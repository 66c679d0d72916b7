package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/marketcms/internal/config"
	"github.com/marketcms/internal/db"
	"github.com/marketcms/internal/router"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	if err := db.Seed(); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	// 设置并运行 Gin 服务器
	r, err := router.SetupRouter(cfg)
	if err != nil {
		log.Fatalf("failed to set up router: %v", err)
	}
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
