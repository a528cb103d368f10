package routes

import (
	"communitypulse-be/controllers"
	"communitypulse-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AdminRoutes sets up the moderation routes. Every route in the group
// requires an authenticated admin session.
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/issues", controllers.AdminListIssues)
		admin.PUT("/issues/:id", controllers.AdminUpdateIssue)
	}
}
