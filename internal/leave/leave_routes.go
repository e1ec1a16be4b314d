package leave

import (
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer middleware.Enforcer,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("",
			middleware.Authorize(enforcer, "leave", "create"),
			middleware.RateLimitByUser(2, 5),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.GET("/my-requests", middleware.Authorize(enforcer, "leave", "read_own"), handler.ListOwn)
		leaves.GET("/balance", middleware.Authorize(enforcer, "balance", "read"), handler.Balance)
		leaves.DELETE("/:id", middleware.Authorize(enforcer, "leave", "cancel"), handler.Cancel)

		leaves.GET("/all", middleware.Authorize(enforcer, "leave", "read_all"), handler.ListAll)
		leaves.GET("/pending", middleware.Authorize(enforcer, "leave", "read_all"), handler.ListPending)
		leaves.PUT("/:id/approve", middleware.Authorize(enforcer, "leave", "resolve"), handler.Approve)
		leaves.PUT("/:id/reject", middleware.Authorize(enforcer, "leave", "resolve"), handler.Reject)
	}
}
