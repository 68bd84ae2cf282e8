package session

import (
	"go-presence/internal/middleware"
	"go-presence/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	sessions := r.Group("/sessions")
	sessions.Use(middleware.AuthMiddleware())
	sessions.Use(middleware.ExtractEmployeeID())
	sessions.Use(middleware.ContextLogger(logger))
	{
		sessions.POST("/start",
			middleware.RateLimitByEmployee(0.5, 3),
			middleware.Idempotency(rdb),
			rbac.Authorize(rbacService, "sessions", "write"),
			handler.Start,
		)

		sessions.POST("/checkin",
			middleware.RateLimitByEmployee(0.5, 3),
			middleware.Idempotency(rdb),
			rbac.Authorize(rbacService, "checkins", "write"),
			handler.CheckIn,
		)

		sessions.POST("/pause",
			middleware.RateLimitByEmployee(0.5, 3),
			rbac.Authorize(rbacService, "sessions", "write"),
			handler.Pause,
		)

		sessions.POST("/suspend",
			middleware.RateLimitByEmployee(0.5, 3),
			rbac.Authorize(rbacService, "sessions", "write"),
			handler.Suspend,
		)

		sessions.POST("/resume",
			middleware.RateLimitByEmployee(0.5, 3),
			rbac.Authorize(rbacService, "sessions", "write"),
			handler.Resume,
		)

		sessions.POST("/end",
			middleware.RateLimitByEmployee(0.5, 3),
			rbac.Authorize(rbacService, "sessions", "write"),
			handler.End,
		)

		sessions.GET("/active",
			middleware.RateLimitByEmployee(3, 10),
			rbac.Authorize(rbacService, "sessions", "read"),
			handler.GetActive,
		)

		sessions.GET("/history",
			middleware.RateLimitByEmployee(3, 10),
			rbac.Authorize(rbacService, "sessions", "read"),
			handler.GetHistory,
		)

		sessions.GET("/summary",
			middleware.RateLimitByEmployee(3, 10),
			rbac.Authorize(rbacService, "sessions", "read"),
			handler.GetDaySummary,
		)

		sessions.POST("/paircode",
			middleware.RateLimitByEmployee(0.5, 3),
			rbac.Authorize(rbacService, "paircodes", "write"),
			handler.GeneratePairCode,
		)

		sessions.POST("/paircode/claim",
			middleware.RateLimitByEmployee(0.5, 3),
			rbac.Authorize(rbacService, "paircodes", "write"),
			handler.ClaimPairCode,
		)
	}
}
