package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/humorproject/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateProfile inserts a profile. Pass empty names for an incomplete profile.
func (f *Fixtures) CreateProfile(ctx context.Context, email, first, last string, superadmin bool) models.Profile {
	f.t.Helper()

	p := models.Profile{
		ID:           uuid.New().String(),
		Email:        email,
		EmailCI:      text.Fold(email),
		FirstName:    first,
		FirstNameCI:  text.Fold(first),
		LastName:     last,
		LastNameCI:   text.Fold(last),
		IsSuperAdmin: superadmin,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := f.db.Collection("profiles").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test profile: %v", err)
	}
	return p
}

// CreateSemester inserts a semester.
func (f *Fixtures) CreateSemester(ctx context.Context, name string) models.Semester {
	f.t.Helper()

	s := models.Semester{ID: primitive.NewObjectID(), Name: name, CreatedAt: time.Now().UTC()}
	if _, err := f.db.Collection("semesters").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test semester: %v", err)
	}
	return s
}

// CreateAssignment inserts an assignment due at due.
func (f *Fixtures) CreateAssignment(ctx context.Context, title, description string, due time.Time, semesterID primitive.ObjectID) models.Assignment {
	f.t.Helper()

	a := models.Assignment{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: description,
		DueDate:     due.UTC(),
		SemesterID:  semesterID,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("assignments").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test assignment: %v", err)
	}
	return a
}

// CreateSubmission inserts a submission created at created.
func (f *Fixtures) CreateSubmission(ctx context.Context, assignmentID primitive.ObjectID, profileID, content string, created time.Time) models.Submission {
	f.t.Helper()

	s := models.Submission{
		ID:           primitive.NewObjectID(),
		AssignmentID: assignmentID,
		ProfileID:    profileID,
		Content:      content,
		CreatedAt:    created.UTC(),
	}
	if _, err := f.db.Collection("submissions").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test submission: %v", err)
	}
	return s
}

// CreateDocumentation inserts a documentation record.
func (f *Fixtures) CreateDocumentation(ctx context.Context, title, content string) models.Documentation {
	f.t.Helper()

	d := models.Documentation{ID: primitive.NewObjectID(), Title: title, Content: content, CreatedAt: time.Now().UTC()}
	if _, err := f.db.Collection("documentations").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("failed to create test documentation: %v", err)
	}
	return d
}

// CreateAgenda inserts a meeting agenda.
func (f *Fixtures) CreateAgenda(ctx context.Context, title, content, location string, at time.Time, semesterID primitive.ObjectID) models.MeetingAgenda {
	f.t.Helper()

	a := models.MeetingAgenda{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Content:     content,
		Location:    location,
		MeetingTime: at.UTC(),
		SemesterID:  semesterID,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("meeting_agendas").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test agenda: %v", err)
	}
	return a
}
