// internal/app/store/submissions/store.go
package submissions

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/humorproject/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages the submissions collection.
type Store struct {
	c *mongo.Collection
}

// New creates a submissions Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("submissions")}
}

// EnsureIndexes creates the per-student and per-assignment lookup indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "profile_id", Value: 1}, {Key: "created_datetime_utc", Value: -1}},
			Options: options.Index().SetName("idx_submissions_profile"),
		},
		{
			Keys:    bson.D{{Key: "assignment_id", Value: 1}},
			Options: options.Index().SetName("idx_submissions_assignment"),
		},
		{
			Keys:    bson.D{{Key: "created_datetime_utc", Value: -1}},
			Options: options.Index().SetName("idx_submissions_created"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a submission. Content is stored trimmed.
func (s *Store) Create(ctx context.Context, assignmentID primitive.ObjectID, profileID, content string) (models.Submission, error) {
	sub := models.Submission{
		ID:           primitive.NewObjectID(),
		AssignmentID: assignmentID,
		ProfileID:    profileID,
		Content:      strings.TrimSpace(content),
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		return models.Submission{}, err
	}
	return sub, nil
}

// ListByProfile returns one student's submissions, newest first.
func (s *Store) ListByProfile(ctx context.Context, profileID string) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_datetime_utc", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"profile_id": profileID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Submission
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Detail is a submission joined with its assignment title and submitter.
type Detail struct {
	models.Submission `bson:",inline"`
	AssignmentTitle   string `bson:"assignment_title"`
	Email             string `bson:"email"`
	FirstName         string `bson:"first_name"`
	LastName          string `bson:"last_name"`
}

// ListWithDetails returns every submission, newest first, joined with the
// assignment and profile collections. Missing joins leave fields blank.
func (s *Store) ListWithDetails(ctx context.Context) ([]Detail, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_datetime_utc", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "assignments",
			"localField":   "assignment_id",
			"foreignField": "_id",
			"as":           "assignment",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "profiles",
			"localField":   "profile_id",
			"foreignField": "_id",
			"as":           "profile",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$assignment", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$unwind", Value: bson.M{"path": "$profile", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$addFields", Value: bson.M{
			"assignment_title": bson.M{"$ifNull": bson.A{"$assignment.title", ""}},
			"email":            bson.M{"$ifNull": bson.A{"$profile.email", ""}},
			"first_name":       bson.M{"$ifNull": bson.A{"$profile.first_name", ""}},
			"last_name":        bson.M{"$ifNull": bson.A{"$profile.last_name", ""}},
		}}},
		{{Key: "$project", Value: bson.M{"assignment": 0, "profile": 0}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Detail
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByAssignment removes every submission for an assignment.
func (s *Store) DeleteByAssignment(ctx context.Context, assignmentID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"assignment_id": assignmentID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of submissions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
