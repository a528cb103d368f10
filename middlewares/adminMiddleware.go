package middlewares

import (
	"net/http"

	"communitypulse-be/session"

	"github.com/gin-gonic/gin"
)

// RequireAdmin lets only admin sessions through. An authenticated user
// without the admin role is signed out on the spot: the session cookie is
// cleared along with the 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromContext(c)

		if !sess.Authenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing authorization token"})
			c.Abort()
			return
		}

		if !sess.IsAdmin() {
			if session.Default != nil {
				session.Default.Clear(c)
			}
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
