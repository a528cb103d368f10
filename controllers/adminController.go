package controllers

import (
	"context"
	"net/http"
	"time"

	"communitypulse-be/live"
	"communitypulse-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminListIssues returns every issue, spam included, newest first
func AdminListIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := issueCollection().Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	issues := make([]models.Issue, 0)
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"issues":      issues,
		"totalIssues": len(issues),
	})
}

// AdminUpdateIssue applies a partial update to the workflow fields of an
// issue. Entering resolved stamps resolvedAt; leaving it clears the stamp.
// Issues are never deleted: flagging isSpam is how a report leaves the
// public feed.
func AdminUpdateIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Status        *string  `json:"status,omitempty"`
		PriorityScore *float64 `json:"priorityScore,omitempty"`
		IsSpam        *bool    `json:"isSpam,omitempty"`
		AssignedTo    *string  `json:"assignedTo,omitempty"`
		PublicNotes   *string  `json:"publicNotes,omitempty"`
		ResponseTime  *string  `json:"responseTime,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Status != nil && !models.ValidStatus(*input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
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

	set := bson.M{"updatedAt": time.Now()}
	unset := bson.M{}

	if input.Status != nil {
		newStatus := models.IssueStatus(*input.Status)
		set["status"] = newStatus
		if newStatus == models.StatusResolved && issue.Status != models.StatusResolved {
			set["resolvedAt"] = time.Now()
		}
		if newStatus != models.StatusResolved && issue.Status == models.StatusResolved {
			unset["resolvedAt"] = ""
		}
	}
	if input.PriorityScore != nil {
		set["priorityScore"] = *input.PriorityScore
	}
	if input.IsSpam != nil {
		set["isSpam"] = *input.IsSpam
	}
	if input.AssignedTo != nil {
		set["assignedTo"] = *input.AssignedTo
	}
	if input.PublicNotes != nil {
		set["publicNotes"] = *input.PublicNotes
	}
	if input.ResponseTime != nil {
		set["responseTime"] = *input.ResponseTime
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	if _, err := issueCollection().UpdateOne(ctx, bson.M{"_id": issueID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	var updated models.Issue
	if err := issueCollection().FindOne(ctx, bson.M{"_id": issueID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	live.Events.Publish(live.Event{Type: live.EventUpdate, Issue: updated})

	c.JSON(http.StatusOK, updated)
}
