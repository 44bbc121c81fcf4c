// internal/domain/models/profile.go
package models

import (
	"strings"
	"time"
)

// Profile is the site-side record for a signed-in person. The ID matches the
// subject of the access token and is a UUID string.
type Profile struct {
	ID           string `bson:"_id" json:"id"`
	Email        string `bson:"email" json:"email"`
	EmailCI      string `bson:"email_ci" json:"-"` // folded for search
	FirstName    string `bson:"first_name,omitempty" json:"first_name,omitempty"`
	FirstNameCI  string `bson:"first_name_ci,omitempty" json:"-"`
	LastName     string `bson:"last_name,omitempty" json:"last_name,omitempty"`
	LastNameCI   string `bson:"last_name_ci,omitempty" json:"-"`
	IsSuperAdmin bool   `bson:"is_superadmin" json:"is_superadmin"`

	CreatedAt  time.Time  `bson:"created_datetime_utc" json:"created_datetime_utc"`
	ModifiedAt *time.Time `bson:"modified_datetime_utc,omitempty" json:"modified_datetime_utc,omitempty"`
}

// HasFullName reports whether both first and last name are present.
func (p Profile) HasFullName() bool {
	return strings.TrimSpace(p.FirstName) != "" && strings.TrimSpace(p.LastName) != ""
}

// DisplayName joins first and last name. It returns "" when both are blank.
func (p Profile) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}
