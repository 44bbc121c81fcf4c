// internal/app/store/assignments/store.go
package assignments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/humorproject/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no assignment matches.
var ErrNotFound = errors.New("assignment not found")

// Store manages the assignments collection.
type Store struct {
	c *mongo.Collection
}

// New creates an assignments Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("assignments")}
}

// EnsureIndexes creates the due-date ordering index and the semester lookup index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "due_date_utc", Value: 1}},
			Options: options.Index().SetName("idx_assignments_due"),
		},
		{
			Keys:    bson.D{{Key: "semester_id", Value: 1}},
			Options: options.Index().SetName("idx_assignments_semester"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// List returns every assignment ordered by due date, soonest first.
func (s *Store) List(ctx context.Context) ([]models.Assignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_date_utc", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one assignment.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Assignment, error) {
	var a models.Assignment
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return models.Assignment{}, ErrNotFound
	}
	return a, err
}

// Create inserts a new assignment, stamping created and modified times.
func (s *Store) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.Title = strings.TrimSpace(a.Title)
	a.DueDate = a.DueDate.UTC()
	a.CreatedAt = now
	a.ModifiedAt = &now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Assignment{}, err
	}
	return a, nil
}

// Update overwrites the editable fields of a.ID and stamps the modified time.
func (s *Store) Update(ctx context.Context, a models.Assignment) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": a.ID}, bson.M{"$set": bson.M{
		"title":                 strings.TrimSpace(a.Title),
		"description":           a.Description,
		"due_date_utc":          a.DueDate.UTC(),
		"semester_id":           a.SemesterID,
		"modified_datetime_utc": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an assignment.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountBySemester counts assignments that reference a semester.
func (s *Store) CountBySemester(ctx context.Context, semesterID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"semester_id": semesterID})
}

// Count returns the number of assignments.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
