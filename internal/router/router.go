package router

import (
	"github.com/blues/ncp/internal/bank"
	"github.com/blues/ncp/internal/config"
	"github.com/blues/ncp/internal/handler"
	"github.com/blues/ncp/internal/logic"
	"github.com/blues/ncp/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Setup 组装路由, memBank为空时不注册充值接口
func Setup(p *logic.Platform, memBank *bank.MemoryBank, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	auth := middleware.Auth([]byte(cfg.Auth.JwtSecret))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "nft-charity-platform",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// NFT相关路由
		nftHandler := handler.NewNftHandler(p)
		nfts := v1.Group("/nfts")
		{
			nfts.POST("", auth, nftHandler.Mint)
			nfts.POST("/:id/transfer", auth, nftHandler.Transfer)
			nfts.GET("/:id/owner", nftHandler.GetOwner)
			nfts.GET("/:id/metadata", nftHandler.GetMetadata)
		}

		// 市场相关路由
		marketHandler := handler.NewMarketHandler(p)
		market := v1.Group("/market")
		{
			market.POST("/listings", auth, marketHandler.List)
			market.GET("/listings/:id", marketHandler.GetPrice)
			market.POST("/listings/:id/buy", auth, marketHandler.Buy)
		}

		// 公益活动相关路由
		campaignHandler := handler.NewCampaignHandler(p)
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", auth, campaignHandler.Create)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.POST("/:id/donations", auth, campaignHandler.Donate)
			campaigns.POST("/:id/nft-donations", auth, campaignHandler.DonateNFT)
			campaigns.POST("/:id/milestones", auth, campaignHandler.AddMilestone)
			campaigns.GET("/:id/milestones/:index", campaignHandler.GetMilestone)
			campaigns.POST("/:id/milestones/:index/check", auth, campaignHandler.CheckMilestone)
			campaigns.POST("/:id/end", auth, campaignHandler.End)
			campaigns.GET("/:id/donations/:addr", campaignHandler.GetDonationHistory)
			campaigns.GET("/:id/stats/:addr", campaignHandler.GetStats)
			campaigns.GET("/:id/nfts", campaignHandler.GetNFTs)
		}

		// 管理配置相关路由
		adminHandler := handler.NewAdminHandler(p)
		admin := v1.Group("/admin")
		{
			admin.GET("/state", adminHandler.GetState)
			admin.PUT("/charity-address", auth, adminHandler.SetCharityAddress)
			admin.PUT("/donation-percentage", auth, adminHandler.SetDonationPercentage)
			admin.POST("/pause", auth, adminHandler.TogglePause)
		}

		// 内存账本充值路由, 仅开发模式
		if memBank != nil && gin.Mode() != gin.ReleaseMode {
			bankHandler := handler.NewBankHandler(memBank)
			bankGroup := v1.Group("/bank")
			{
				bankGroup.POST("/deposits", bankHandler.Deposit)
				bankGroup.GET("/balances/:addr", bankHandler.GetBalance)
			}
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
