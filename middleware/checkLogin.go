package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckLoginMiddleware aborts requests that carry no authenticated buyer.
func CheckLoginMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if BuyerID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Not logged in",
			})
			return
		}

		c.Next()
	}
}
