package employee

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
	// Registration is open, everything else requires auth
	r.POST("/employees/register",
		middleware.RateLimitByIP(0.2, 2),
		handler.Register,
	)

	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(middleware.ExtractEmployeeID())
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByEmployee(3, 10),
			rbac.Authorize(rbacService, "employees", "read"),
			handler.GetAll,
		)

		employees.GET("/options",
			middleware.RateLimitByEmployee(5, 20),
			rbac.Authorize(rbacService, "employees", "read"),
			handler.GetOptions,
		)

		employees.GET("/:id",
			middleware.RateLimitByEmployee(3, 10),
			rbac.Authorize(rbacService, "employees", "read"),
			handler.GetById,
		)

		employees.PUT("/:id",
			middleware.RateLimitByEmployee(0.5, 2),
			rbac.Authorize(rbacService, "employees", "write"),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByEmployee(0.05, 1),
			rbac.Authorize(rbacService, "employees", "write"),
			handler.Delete,
		)
	}
}
