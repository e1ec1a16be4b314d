package middleware

import (
	"net/http"

	"go-leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Enforcer is a local interface so anything with casbin's Enforce signature
// can back the middleware.
type Enforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
}

// Authorize checks the caller's role against the policy for resource:action.
// It must run after AuthMiddleware, which puts the role into the context.
func Authorize(enforcer Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
