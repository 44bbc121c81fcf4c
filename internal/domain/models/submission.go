// internal/domain/models/submission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission is a student's answer to an assignment. It is never edited
// after creation.
type Submission struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssignmentID primitive.ObjectID `bson:"assignment_id" json:"assignment_id"`
	ProfileID    string             `bson:"profile_id" json:"profile_id"`
	Content      string             `bson:"content" json:"content"`

	CreatedAt time.Time `bson:"created_datetime_utc" json:"created_datetime_utc"`
}
