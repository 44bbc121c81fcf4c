// internal/domain/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment is a piece of coursework with a due date. Description holds
// rich text (HTML or Markdown).
type Assignment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	DueDate     time.Time          `bson:"due_date_utc" json:"due_date_utc"`
	SemesterID  primitive.ObjectID `bson:"semester_id" json:"semester_id"`

	CreatedAt  time.Time  `bson:"created_datetime_utc" json:"created_datetime_utc"`
	ModifiedAt *time.Time `bson:"modified_datetime_utc,omitempty" json:"modified_datetime_utc,omitempty"`
}

// IsPastDue reports whether the due date is before now.
func (a Assignment) IsPastDue(now time.Time) bool {
	return a.DueDate.Before(now)
}
