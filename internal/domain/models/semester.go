// internal/domain/models/semester.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Semester groups assignments and meeting agendas.
type Semester struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`

	CreatedAt  time.Time  `bson:"created_datetime_utc" json:"created_datetime_utc"`
	ModifiedAt *time.Time `bson:"modified_datetime_utc,omitempty" json:"modified_datetime_utc,omitempty"`
}
