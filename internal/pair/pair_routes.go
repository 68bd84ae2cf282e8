package pair

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
	pairs := r.Group("/pairs")
	pairs.Use(middleware.AuthMiddleware())
	pairs.Use(middleware.ExtractEmployeeID())
	pairs.Use(middleware.ContextLogger(logger))
	{
		pairs.GET("/partner",
			middleware.RateLimitByEmployee(3, 10),
			rbac.Authorize(rbacService, "paircodes", "read"),
			handler.GetMyPartner,
		)

		pairs.GET("",
			middleware.RateLimitByEmployee(3, 10),
			rbac.Authorize(rbacService, "pairs", "read"),
			handler.GetAll,
		)

		pairs.GET("/:id",
			middleware.RateLimitByEmployee(3, 10),
			rbac.Authorize(rbacService, "pairs", "read"),
			handler.GetById,
		)

		pairs.POST("",
			middleware.RateLimitByEmployee(0.2, 1),
			rbac.Authorize(rbacService, "pairs", "write"),
			handler.Create,
		)

		pairs.PATCH("/:id/deactivate",
			middleware.RateLimitByEmployee(0.5, 2),
			rbac.Authorize(rbacService, "pairs", "write"),
			handler.Deactivate,
		)

		pairs.DELETE("/:id",
			middleware.RateLimitByEmployee(0.05, 1),
			rbac.Authorize(rbacService, "pairs", "write"),
			handler.Delete,
		)
	}
}
