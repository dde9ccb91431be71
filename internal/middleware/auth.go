package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sirwalterjones/sessionremind/internal/service/auth"
)

const ownerIDKey = "owner_id"

type AuthMiddleware struct {
	authSvc *auth.Service
}

func NewAuthMiddleware(authSvc *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// Authenticate requires a valid bearer token and stows the owner id in
// the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "missing bearer token"})
			return
		}

		ownerID, err := m.authSvc.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid token"})
			return
		}

		c.Set(ownerIDKey, ownerID.String())
		c.Next()
	}
}

// OwnerID returns the authenticated owner id set by Authenticate.
func OwnerID(c *gin.Context) string {
	return c.GetString(ownerIDKey)
}

// CronAuth guards the dispatch trigger with a shared secret so only the
// external scheduler can fire cycles.
func CronAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader("X-Cron-Secret")
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "unauthorized"})
			return
		}
		c.Next()
	}
}
