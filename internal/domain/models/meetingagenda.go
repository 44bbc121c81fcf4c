// internal/domain/models/meetingagenda.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MeetingAgenda describes one class meeting.
type MeetingAgenda struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content" json:"content"`
	Location    string             `bson:"location" json:"location"`
	MeetingTime time.Time          `bson:"meeting_datetime_utc" json:"meeting_datetime_utc"`
	SemesterID  primitive.ObjectID `bson:"semester_id" json:"semester_id"`

	CreatedAt  time.Time  `bson:"created_datetime_utc" json:"created_datetime_utc"`
	ModifiedAt *time.Time `bson:"modified_datetime_utc,omitempty" json:"modified_datetime_utc,omitempty"`
}
