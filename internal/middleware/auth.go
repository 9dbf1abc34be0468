package middleware

import (
	"context"
	"net/http"

	"filesmanager/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// A private key for context access
type contextKey string

const userContextKey = contextKey("userID")

// RequireAuth verifies the x-token header against the session store and
// rejects the request with 401 when no user resolves.
func RequireAuth(guard *auth.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("x-token")

		userID, err := guard.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		// Store the resolved user ID in the context for handlers to use
		ctx := context.WithValue(c.Request.Context(), userContextKey, userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ForContext finds the authenticated user ID in the context. It returns the
// empty string for unauthenticated requests.
func ForContext(ctx context.Context) string {
	userID, _ := ctx.Value(userContextKey).(string)
	return userID
}
