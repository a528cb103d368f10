package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"communitypulse-be/config"
	"communitypulse-be/geocode"
	"communitypulse-be/live"
	"communitypulse-be/middlewares"
	"communitypulse-be/models"
	"communitypulse-be/routes"
	"communitypulse-be/session"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	config.LoadConfig()

	if config.JWTSecret == "" {
		log.Fatal("Please define the JWT_SECRET environment variable")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}
	config.ConnectRedis()
	config.ConnectStorage()

	if err := models.EnsureVoteIndex(db.Collection("votes")); err != nil {
		log.Fatalf("Failed to create vote index: %v", err)
	}
	if err := models.EnsureIssueIndexes(db.Collection("issues")); err != nil {
		log.Fatalf("Failed to create issue indexes: %v", err)
	}

	session.Default = session.NewCookieStore(config.JWTSecret, config.Domain, config.Environment == "production")
	geocode.Default = geocode.NewClient(config.NominatimBaseURL)

	warmLiveFeed(db.Collection("issues"))
	go live.Feed.Consume(live.Events.Subscribe())

	r := gin.Default()

	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoadSession())

	routes.AuthRoutes(r)
	routes.IssueRoutes(r)
	routes.ReportRoutes(r)
	routes.AnalyticsRoutes(r)
	routes.AdminRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if err := r.Run(":" + config.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// warmLiveFeed seeds the in-memory feed with the visible issues, newest
// first. A failed warm-up is logged rather than fatal: the feed endpoints
// answer 503 until the next restart while the rest of the API keeps working.
func warmLiveFeed(collection *mongo.Collection) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{"isSpam": false}, opts)
	if err != nil {
		log.Printf("Failed to warm the issue feed: %v", err)
		return
	}

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		log.Printf("Failed to decode issues while warming the feed: %v", err)
		return
	}

	live.Feed.Load(issues)
	log.Printf("Issue feed warmed with %d issues", len(issues))
}
