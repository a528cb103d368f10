package controllers

import (
	"communitypulse-be/config"

	"go.mongodb.org/mongo-driver/mongo"
)

// Collection handles are resolved per call so importing this package does not
// dial the database.
func issueCollection() *mongo.Collection { return config.GetCollection("issues") }

func userCollection() *mongo.Collection { return config.GetCollection("users") }

func voteCollection() *mongo.Collection { return config.GetCollection("votes") }
