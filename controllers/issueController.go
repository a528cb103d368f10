package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"communitypulse-be/live"
	"communitypulse-be/models"
	"communitypulse-be/reports"
	"communitypulse-be/session"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// feedQuery reads the projection inputs of the public feed from the request.
func feedQuery(c *gin.Context) reports.Query {
	return reports.Query{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Sort:     c.DefaultQuery("sort", reports.SortNewest),
	}
}

// ListIssues serves the public feed: the live mirror filtered and sorted per
// request. The database is not touched; a mirror that never warmed is
// reported as unavailable.
func ListIssues(c *gin.Context) {
	if !live.Feed.Loaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Issue feed is not available right now"})
		return
	}

	visible := live.Feed.Visible()
	projected := reports.Apply(visible, feedQuery(c))

	c.JSON(http.StatusOK, gin.H{
		"issues":       projected,
		"totalIssues":  len(visible),
		"activeIssues": live.Feed.ActiveCount(),
	})
}

// GetIssue retrieves a single issue by its ID
func GetIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = issueCollection().FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	// Spam never shows publicly, not even by direct link.
	if issue.IsSpam {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	c.JSON(http.StatusOK, issue)
}

// HandleVoteOnIssue toggles the caller's upvote on an issue (vote if not
// voted, unvote if already voted) and keeps upvotesCount in step.
func HandleVoteOnIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	userObjID, err := primitive.ObjectIDFromHex(session.FromContext(c).UserID())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = issueCollection().FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}
	if issue.IsSpam {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	count, err := voteCollection().CountDocuments(ctx, bson.M{
		"issue": issueID,
		"user":  userObjID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing votes"})
		return
	}

	voted := false
	delta := -1
	message := "Vote removed successfully"

	if count > 0 {
		_, err = voteCollection().DeleteOne(ctx, bson.M{
			"issue": issueID,
			"user":  userObjID,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove vote"})
			return
		}
	} else {
		vote := models.Vote{
			ID:        primitive.NewObjectID(),
			Issue:     issueID,
			User:      userObjID,
			CreatedAt: time.Now(),
		}
		if _, err := voteCollection().InsertOne(ctx, vote); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cast vote"})
			return
		}
		voted = true
		delta = 1
		message = "Vote cast successfully"
	}

	_, err = issueCollection().UpdateOne(ctx, bson.M{"_id": issueID}, bson.M{
		"$inc": bson.M{"upvotesCount": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vote count"})
		return
	}

	upvotes := issue.UpvotesCount + delta
	var updated models.Issue
	if err := issueCollection().FindOne(ctx, bson.M{"_id": issueID}).Decode(&updated); err == nil {
		upvotes = updated.UpvotesCount
		live.Events.Publish(live.Event{Type: live.EventUpdate, Issue: updated})
	} else {
		log.Println("Error reloading issue after vote:", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      message,
		"voted":        voted,
		"userHasVoted": voted,
		"upvotesCount": upvotes,
	})
}

// RecentIssues returns the latest geotagged issues for the map view
func RecentIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	limit := 19

	// Only pins that can actually be placed: real coordinates, no spam.
	filter := bson.M{
		"isSpam":    false,
		"latitude":  bson.M{"$ne": 0},
		"longitude": bson.M{"$ne": 0},
	}

	projection := bson.M{
		"_id":          1,
		"title":        1,
		"latitude":     1,
		"longitude":    1,
		"locationName": 1,
		"category":     1,
		"status":       1,
		"createdAt":    1,
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(projection)

	cursor, err := issueCollection().Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent issues"})
		return
	}
	defer cursor.Close(ctx)

	type IssuePin struct {
		ID           primitive.ObjectID `bson:"_id" json:"id"`
		Title        string             `bson:"title" json:"title"`
		Latitude     float64            `bson:"latitude" json:"latitude"`
		Longitude    float64            `bson:"longitude" json:"longitude"`
		LocationName string             `bson:"locationName" json:"locationName"`
		Category     string             `bson:"category" json:"category"`
		Status       string             `bson:"status" json:"status"`
		CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	}

	pins := make([]IssuePin, 0, limit)
	if err := cursor.All(ctx, &pins); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode recent issues"})
		return
	}

	c.JSON(http.StatusOK, pins)
}

// ExportIssues streams the current projection as an xlsx attachment. An empty
// projection yields a notice instead of a file.
func ExportIssues(c *gin.Context) {
	if !live.Feed.Loaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Issue feed is not available right now"})
		return
	}

	rows := reports.Apply(live.Feed.Visible(), feedQuery(c))
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No data to export"})
		return
	}

	workbook, err := reports.BuildWorkbook(rows)
	if err != nil {
		log.Println("Error building export workbook:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}

	filename := reports.ExportFilename(time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		log.Println("Error streaming export workbook:", err)
	}
}
