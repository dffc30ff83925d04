package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aurorahq/akfeed/internal/store"
)

// ContextUserKey is the gin context key the middleware stores the
// authenticated user ID under.
const ContextUserKey = "auth_user_id"

// RequireAuth rejects requests without a valid bearer token and stores
// the caller's user ID in the request context.
func RequireAuth(issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")
		userID, err := issuer.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ContextUserKey, userID)
		c.Next()
	}
}

// RequireAdmin allows only users whose stored role is admin. It must be
// registered after RequireAuth.
func RequireAdmin(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		role, err := users.GetUserRole(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "role lookup failed"})
			return
		}
		if role != store.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user ID set by RequireAuth, or an
// empty string when the request is unauthenticated.
func UserID(c *gin.Context) string {
	id, _ := c.Get(ContextUserKey)
	s, _ := id.(string)
	return s
}
