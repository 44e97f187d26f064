package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth_identity"

// RequireAuth rejects the request with 401 before it reaches any store unless
// the Authorization header carries a verifiable bearer token.
func RequireAuth(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "missing bearer token",
			})
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid or expired token",
			})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// GetIdentity returns the identity stored by RequireAuth, or nil on
// unauthenticated routes.
func GetIdentity(c *gin.Context) *Identity {
	if val, ok := c.Get(identityKey); ok {
		if id, ok := val.(*Identity); ok {
			return id
		}
	}
	return nil
}
