package middleware

import (
	"net/http"

	"go-presence/internal/shared/response"

	"github.com/gin-gonic/gin"
)

func ExtractEmployeeID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		employeeID, exists := ctx.Get("employee_id")
		if !exists {
			response.Error(ctx, http.StatusUnauthorized, "UNAUTHORIZED", "Employee is not authenticated", nil)
			ctx.Abort()
			return
		}

		employeeIDStr, ok := employeeID.(string)
		if !ok || employeeIDStr == "" {
			response.Error(ctx, http.StatusUnauthorized, "INVALID_EMPLOYEE_ID", "Employee ID has an invalid format", nil)
			ctx.Abort()
			return
		}

		// Re-set with a guaranteed string type
		ctx.Set("employee_id_validated", employeeIDStr)
		ctx.Next()
	}
}
