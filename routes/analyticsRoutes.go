package routes

import (
	"communitypulse-be/controllers"

	"github.com/gin-gonic/gin"
)

// AnalyticsRoutes sets up the analytics dashboard routes
func AnalyticsRoutes(r *gin.Engine) {
	analytics := r.Group("/api/analytics")
	{
		analytics.GET("", controllers.GetAnalytics)
		analytics.GET("/extended", controllers.GetExtendedAnalytics)
	}
}
