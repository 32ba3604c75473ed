package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoleMiddleware lets through only callers whose token carries role.
func RequireRoleMiddleware(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Permission denied",
			})
			return
		}

		c.Next()
	}
}
