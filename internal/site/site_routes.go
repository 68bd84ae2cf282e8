package site

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
	sites := r.Group("/sites")
	sites.Use(middleware.AuthMiddleware())
	sites.Use(middleware.ExtractEmployeeID())
	sites.Use(middleware.ContextLogger(logger))
	{
		sites.GET("",
			middleware.RateLimitByEmployee(3, 10),
			rbac.Authorize(rbacService, "sites", "read"),
			handler.GetAll,
		)

		sites.GET("/options",
			middleware.RateLimitByEmployee(5, 20),
			rbac.Authorize(rbacService, "sites", "read"),
			handler.GetOptions,
		)

		sites.GET("/:id",
			middleware.RateLimitByEmployee(3, 10),
			rbac.Authorize(rbacService, "sites", "read"),
			handler.GetById,
		)

		sites.POST("",
			middleware.RateLimitByEmployee(0.2, 1),
			rbac.Authorize(rbacService, "sites", "write"),
			handler.Create,
		)

		sites.PUT("/:id",
			middleware.RateLimitByEmployee(0.5, 2),
			rbac.Authorize(rbacService, "sites", "write"),
			handler.Update,
		)

		sites.DELETE("/:id",
			middleware.RateLimitByEmployee(0.05, 1),
			rbac.Authorize(rbacService, "sites", "write"),
			handler.Delete,
		)
	}
}
