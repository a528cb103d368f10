package middlewares

import (
	"net/http"

	"communitypulse-be/session"

	"github.com/gin-gonic/gin"
)

// LoadSession resolves the request's session through the configured store and
// parks it on the context. It never rejects: requests without a valid token
// simply carry the anonymous session.
func LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.Default != nil {
			session.Inject(c, session.Default.Load(c))
		}
		c.Next()
	}
}

// RequireAuth rejects requests that did not present a valid session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.FromContext(c).Authenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing authorization token"})
			c.Abort()
			return
		}
		c.Next()
	}
}
