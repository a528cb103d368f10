package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vote records one citizen's upvote on an issue. The (issue, user) pair is
// unique; toggling a vote off deletes the row and decrements the issue's
// upvotesCount.
type Vote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Issue     primitive.ObjectID `bson:"issue" json:"issue"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
