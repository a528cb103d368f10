package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCategory enum
type IssueCategory string

const (
	Pothole               IssueCategory = "Pothole"
	BrokenStreetlight     IssueCategory = "Broken Streetlight"
	OverflowingTrashBin   IssueCategory = "Overflowing Trash Bin"
	Graffiti              IssueCategory = "Graffiti"
	DamagedPublicProperty IssueCategory = "Damaged Public Property"
	WaterLeak             IssueCategory = "Water Leak"
	SidewalkDamage        IssueCategory = "Sidewalk Damage"
	TrafficSignalIssue    IssueCategory = "Traffic Signal Issue"
	Other                 IssueCategory = "Other"
)

// IssueStatus enum
type IssueStatus string

const (
	StatusNew        IssueStatus = "new"
	StatusInProgress IssueStatus = "in_progress"
	StatusResolved   IssueStatus = "resolved"
)

// Categories lists every category a report may be submitted under.
func Categories() []IssueCategory {
	return []IssueCategory{
		Pothole,
		BrokenStreetlight,
		OverflowingTrashBin,
		Graffiti,
		DamagedPublicProperty,
		WaterLeak,
		SidewalkDamage,
		TrafficSignalIssue,
		Other,
	}
}

// ValidCategory reports whether s is one of the fixed submission categories.
// Stored rows may still carry arbitrary category strings; aggregation code
// must tolerate them.
func ValidCategory(s string) bool {
	for _, c := range Categories() {
		if s == string(c) {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known workflow status value.
func ValidStatus(s string) bool {
	switch IssueStatus(s) {
	case StatusNew, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Issue represents a civic issue reported by a citizen
type Issue struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Category      IssueCategory      `bson:"category" json:"category"`
	Latitude      float64            `bson:"latitude" json:"latitude"`
	Longitude     float64            `bson:"longitude" json:"longitude"`
	LocationName  string             `bson:"locationName,omitempty" json:"locationName,omitempty"`
	StreetAddress string             `bson:"streetAddress" json:"streetAddress"`
	Landmark      string             `bson:"landmark" json:"landmark"`
	ImageURL      string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Status        IssueStatus        `bson:"status" json:"status"`
	PriorityScore float64            `bson:"priorityScore" json:"priorityScore"`
	UpvotesCount  int                `bson:"upvotesCount" json:"upvotesCount"`
	IsSpam        bool               `bson:"isSpam" json:"isSpam"`
	AssignedTo    string             `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	PublicNotes   string             `bson:"publicNotes,omitempty" json:"publicNotes,omitempty"`
	ResponseTime  string             `bson:"responseTime,omitempty" json:"responseTime,omitempty"`
	ResolvedAt    *time.Time         `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
