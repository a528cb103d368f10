package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"communitypulse-be/analytics"
	"communitypulse-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// fetchAllIssues loads the entire issues table for in-memory aggregation.
func fetchAllIssues(ctx context.Context) ([]models.Issue, error) {
	cursor, err := issueCollection().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// GetAnalytics serves the dashboard aggregations. The whole table is fetched
// unfiltered and folded in memory on every request; a fetch failure surfaces
// as an inline error.
func GetAnalytics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := fetchAllIssues(ctx)
	if err != nil {
		log.Println("Error fetching issues for analytics:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics data"})
		return
	}

	summary := analytics.Summarize(issues)

	c.JSON(http.StatusOK, gin.H{
		"totalIssues":          summary.Total,
		"activeIssues":         summary.Active,
		"resolvedIssues":       summary.Resolved,
		"spamReports":          summary.Spam,
		"monthlyTrends":        analytics.MonthlyTrends(issues),
		"categoryDistribution": analytics.CategoryDistribution(issues),
		"dayOfWeek":            analytics.DayOfWeekCounts(issues),
		"hotspots":             analytics.TopLocations(issues),
	})
}

// GetExtendedAnalytics adds the ranked category view and per-category
// resolution times on top of the base aggregations.
func GetExtendedAnalytics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := fetchAllIssues(ctx)
	if err != nil {
		log.Println("Error fetching issues for analytics:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics data"})
		return
	}

	summary := analytics.Summarize(issues)

	c.JSON(http.StatusOK, gin.H{
		"totalIssues":          summary.Total,
		"activeIssues":         summary.Active,
		"resolvedIssues":       summary.Resolved,
		"spamReports":          summary.Spam,
		"monthlyTrends":        analytics.MonthlyTrends(issues),
		"categoryDistribution": analytics.CategoryDistribution(issues),
		"dayOfWeek":            analytics.DayOfWeekCounts(issues),
		"hotspots":             analytics.TopLocations(issues),
		"rankedCategories":     analytics.RankedCategories(issues),
		"resolutionTimes":      analytics.ResolutionTimes(issues),
	})
}
