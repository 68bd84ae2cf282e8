package alert

import (
	"go-presence/internal/middleware"
	"go-presence/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	alerts := r.Group("/alerts")
	alerts.Use(middleware.AuthMiddleware())
	alerts.Use(middleware.ExtractEmployeeID())
	alerts.Use(middleware.ContextLogger(logger))
	{
		alerts.GET("/mine",
			middleware.RateLimitByEmployee(3, 10),
			handler.GetMine,
		)

		alerts.GET("",
			middleware.RateLimitByEmployee(3, 10),
			rbac.Authorize(rbacService, "alerts", "read"),
			handler.List,
		)

		alerts.PATCH("/:id/resolve",
			middleware.RateLimitByEmployee(1, 3),
			rbac.Authorize(rbacService, "alerts", "resolve"),
			handler.Resolve,
		)

		alerts.PATCH("/:id/escalate",
			middleware.RateLimitByEmployee(1, 3),
			rbac.Authorize(rbacService, "alerts", "resolve"),
			handler.Escalate,
		)
	}
}
