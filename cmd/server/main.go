package main

import (
	"github.com/blues/ncp/internal/bank"
	"github.com/blues/ncp/internal/chain"
	"github.com/blues/ncp/internal/config"
	"github.com/blues/ncp/internal/core"
	"github.com/blues/ncp/internal/database"
	"github.com/blues/ncp/internal/event"
	"github.com/blues/ncp/internal/logger"
	"github.com/blues/ncp/internal/logic"
	"github.com/blues/ncp/internal/router"
	"github.com/blues/ncp/internal/scheduler"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if err := logger.Init(cfg.Log); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库
	var db *gorm.DB
	if cfg.Database.Enabled {
		var err error
		db, err = database.Init(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to initialize database: %v", err)
		}
	} else {
		logger.Warn("Database disabled, state is kept in memory only")
	}

	// 选择资金划转实现
	var fundBank core.Bank
	var memBank *bank.MemoryBank
	switch cfg.Bank.Mode {
	case "chain":
		chainClient, err := chain.Init(cfg.Chain)
		if err != nil {
			logger.Fatal("Failed to initialize chain client: %v", err)
		}
		fundBank = chainClient
		logger.Info("Settlement mode: chain, account: %s", chainClient.GetAccountAddress().Hex())
	default:
		memBank = bank.NewMemoryBank()
		fundBank = memBank
		logger.Info("Settlement mode: memory")
	}

	// 初始化事件分发
	publisher, err := event.NewPublisher(db, 10)
	if err != nil {
		logger.Fatal("Failed to initialize event publisher: %v", err)
	}
	defer publisher.Close()

	// 初始化核心状态机宿主
	params := core.Params{
		Owner:              cfg.Admin.Owner,
		CharityAddress:     cfg.Admin.CharityAddress,
		DonationPercentage: cfg.Admin.DonationPercentage,
	}
	platform, err := logic.Bootstrap(params, fundBank, db, publisher)
	if err != nil {
		logger.Fatal("Failed to bootstrap platform: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(platform, memBank, cfg)

	// 启动定时任务
	manager := scheduler.Start(platform, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
