package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the job application state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusInterview Status = "interview"
	StatusDeclined  Status = "declined"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInterview, StatusDeclined:
		return true
	}
	return false
}

// Job is a job application record owned by a single user.
// CreatedBy is set once on create and never changes.
type Job struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Company   string             `bson:"company"`
	Position  string             `bson:"position"`
	Status    Status             `bson:"status"`
	CreatedBy primitive.ObjectID `bson:"createdBy"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}
