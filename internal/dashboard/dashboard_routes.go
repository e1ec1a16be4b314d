package dashboard

import (
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer middleware.Enforcer) {
	stats := r.Group("/dashboard")
	stats.Use(middleware.AuthMiddleware())
	{
		stats.GET("/employee", middleware.Authorize(enforcer, "dashboard", "employee"), handler.EmployeeStats)
		stats.GET("/manager", middleware.Authorize(enforcer, "dashboard", "manager"), handler.ManagerStats)
	}
}
