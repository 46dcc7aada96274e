// 手动触发目录种子数据脚本
//
// AutoMigrate 时会自动写入默认的语言与成就目录。
// 此脚本仅用于手动触发，例如 release 模式下跳过了自动迁移、
// 或运营清空目录后需要恢复默认数据。
//
// 用法: go run scripts/seed.go

package main

import (
	"codequest_backend/internal/config"
	"codequest_backend/pkg/database"
	"codequest_backend/pkg/logger"
	"log"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("执行数据库迁移与目录种子数据...")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("迁移失败: %v", err)
	}
	database.Seed(db)
	log.Println("完成！")
}
