// internal/app/store/semesters/store.go
package semesters

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

// ErrNotFound is returned when no semester matches.
var ErrNotFound = errors.New("semester not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("semesters")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_datetime_utc", Value: -1}},
		Options: options.Index().SetName("idx_semesters_created"),
	})
	return err
}

// List returns every semester, newest first.
func (s *Store) List(ctx context.Context) ([]models.Semester, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_datetime_utc", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Semester
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Semester, error) {
	var sem models.Semester
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sem)
	if err == mongo.ErrNoDocuments {
		return models.Semester{}, ErrNotFound
	}
	return sem, err
}

// Exists reports whether a semester with id exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

func (s *Store) Create(ctx context.Context, name string) (models.Semester, error) {
	now := time.Now().UTC()
	sem := models.Semester{
		ID:         primitive.NewObjectID(),
		Name:       strings.TrimSpace(name),
		CreatedAt:  now,
		ModifiedAt: &now,
	}
	if _, err := s.c.InsertOne(ctx, sem); err != nil {
		return models.Semester{}, err
	}
	return sem, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":                  strings.TrimSpace(name),
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

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
