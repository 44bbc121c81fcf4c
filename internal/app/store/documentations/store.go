// internal/app/store/documentations/store.go
package documentations

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

// ErrNotFound is returned when no documentation matches.
var ErrNotFound = errors.New("documentation not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("documentations")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_datetime_utc", Value: -1}},
		Options: options.Index().SetName("idx_documentations_created"),
	})
	return err
}

// List returns all documentation, newest first.
func (s *Store) List(ctx context.Context) ([]models.Documentation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_datetime_utc", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Documentation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Documentation, error) {
	var d models.Documentation
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return models.Documentation{}, ErrNotFound
	}
	return d, err
}

func (s *Store) Create(ctx context.Context, title, content string) (models.Documentation, error) {
	now := time.Now().UTC()
	d := models.Documentation{
		ID:         primitive.NewObjectID(),
		Title:      strings.TrimSpace(title),
		Content:    content,
		CreatedAt:  now,
		ModifiedAt: &now,
	}
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Documentation{}, err
	}
	return d, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, title, content string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":                 strings.TrimSpace(title),
		"content":               content,
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
