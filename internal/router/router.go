package router

import (
	"fmt"
	"strings"

	"github.com/Kerimcan19/InfluencerAgency/internal/cache"
	"github.com/Kerimcan19/InfluencerAgency/internal/config"
	adminhandlers "github.com/Kerimcan19/InfluencerAgency/internal/http/handlers/admin"
	publichandlers "github.com/Kerimcan19/InfluencerAgency/internal/http/handlers/public"
	"github.com/Kerimcan19/InfluencerAgency/internal/logger"
	"github.com/Kerimcan19/InfluencerAgency/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ia"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.Login)
			auth.POST("/forgot-password", publicHandler.ForgotPassword)
			auth.POST("/reset-password", publicHandler.ResetPassword)
		}

		// 点击跳转（公开，被追踪链接命中）
		apiV1.GET("/track/:token", publicHandler.TrackClick)

		// 需鉴权接口
		authorized := apiV1.Group("")
		authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), RBACMiddleware(c.AuthzService))
		{
			authorized.GET("/users/me", publicHandler.GetCurrentUser)

			// 联盟追踪与报表
			authorized.PUT("/affiliate/generate-link", publicHandler.GenerateLink)
			authorized.GET("/affiliate/reports", publicHandler.GetReports)
			authorized.GET("/affiliate/campaigns", publicHandler.GetCampaigns)
			authorized.GET("/affiliate/campaigns/:id", publicHandler.GetCampaign)
			authorized.POST("/reports", publicHandler.CreateReport)
			authorized.GET("/influencers", publicHandler.ListInfluencers)
			authorized.GET("/dashboard", publicHandler.GetDashboard)

			// MLink 合作方代理
			authorized.GET("/mlink/campaigns", publicHandler.MLinkGetCampaigns)
			authorized.GET("/mlink/reports", publicHandler.MLinkGetReport)
			authorized.PUT("/mlink/generate-link", publicHandler.MLinkGenerateLink)

			// 后台管理
			admin := authorized.Group("/admin")
			{
				admin.POST("/companies", adminHandler.CreateCompany)
				admin.GET("/companies", adminHandler.ListCompanies)
				admin.GET("/companies/:id", adminHandler.GetCompany)
				admin.PUT("/companies/:id", adminHandler.UpdateCompany)
				admin.POST("/companies/:id/users", adminHandler.AddCompanyUser)

				admin.POST("/influencers", adminHandler.AddInfluencer)
				admin.GET("/influencers", adminHandler.ListInfluencers)
				admin.GET("/influencers/:id", adminHandler.GetInfluencer)
				admin.PUT("/influencers/:id", adminHandler.UpdateInfluencer)

				admin.POST("/campaigns", adminHandler.CreateCampaign)
				admin.POST("/campaigns/import", adminHandler.ImportCampaigns)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
