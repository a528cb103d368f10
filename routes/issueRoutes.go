package routes

import (
	"communitypulse-be/controllers"
	"communitypulse-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the public issue feed routes
func IssueRoutes(r *gin.Engine) {
	issues := r.Group("/api/issues")
	{
		issues.GET("", controllers.ListIssues)
		issues.GET("/recent", controllers.RecentIssues)
		issues.GET("/export", controllers.ExportIssues)
		issues.GET("/:id", controllers.GetIssue)
		issues.POST("/:id/vote", middlewares.RequireAuth(), controllers.HandleVoteOnIssue)
	}

	// The live change feed; one subscription per connection.
	r.GET("/ws/issues", controllers.StreamIssues)
}
