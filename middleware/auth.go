package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketcart/jwt"
)

const (
	ContextBuyerID = "BuyerID"
	ContextRole    = "Role"
)

type TokenVerifier interface {
	VerifyToken(token string) (jwt.Claims, error)
}

// AuthMiddleware resolves the bearer token into a buyer id and role. Requests
// without a valid token continue anonymously.
func AuthMiddleware(verifier TokenVerifier, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if token == "" || token == authHeader {
			c.Next()
			return
		}

		claims, err := verifier.VerifyToken(token)
		if err != nil {
			log.WithError(err).Debug("cannot verify token")
			c.Next()
			return
		}

		c.Set(ContextBuyerID, claims.Subject)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// BuyerID returns the authenticated buyer, or "" for anonymous requests.
func BuyerID(c *gin.Context) string {
	return c.GetString(ContextBuyerID)
}
