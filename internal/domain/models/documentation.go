// internal/domain/models/documentation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Documentation is a free-form course document.
type Documentation struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content" json:"content"`

	CreatedAt  time.Time  `bson:"created_datetime_utc" json:"created_datetime_utc"`
	ModifiedAt *time.Time `bson:"modified_datetime_utc,omitempty" json:"modified_datetime_utc,omitempty"`
}

// LastUpdated returns the modified time when set, else the created time.
func (d Documentation) LastUpdated() time.Time {
	if d.ModifiedAt != nil {
		return *d.ModifiedAt
	}
	return d.CreatedAt
}
