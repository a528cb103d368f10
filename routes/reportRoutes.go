package routes

import (
	"communitypulse-be/config"
	"communitypulse-be/controllers"
	"communitypulse-be/middlewares"

	"github.com/gin-gonic/gin"
)

// ReportRoutes sets up the public report submission route
func ReportRoutes(r *gin.Engine) {
	reports := r.Group("/api/reports")
	{
		reports.POST("", middlewares.ReportRateLimiter(config.ReportsPerDay), controllers.SubmitReport)
	}
}
