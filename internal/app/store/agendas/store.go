// internal/app/store/agendas/store.go
package agendas

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

// ErrNotFound is returned when no agenda matches.
var ErrNotFound = errors.New("meeting agenda not found")

// Store manages the meeting_agendas collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("meeting_agendas")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "meeting_datetime_utc", Value: 1}},
			Options: options.Index().SetName("idx_agendas_meeting"),
		},
		{
			Keys:    bson.D{{Key: "semester_id", Value: 1}},
			Options: options.Index().SetName("idx_agendas_semester"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// List returns all agendas in meeting order.
func (s *Store) List(ctx context.Context) ([]models.MeetingAgenda, error) {
	opts := options.Find().SetSort(bson.D{{Key: "meeting_datetime_utc", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.MeetingAgenda
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.MeetingAgenda, error) {
	var a models.MeetingAgenda
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return models.MeetingAgenda{}, ErrNotFound
	}
	return a, err
}

func (s *Store) Create(ctx context.Context, a models.MeetingAgenda) (models.MeetingAgenda, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.Title = strings.TrimSpace(a.Title)
	a.Location = strings.TrimSpace(a.Location)
	a.MeetingTime = a.MeetingTime.UTC()
	a.CreatedAt = now
	a.ModifiedAt = &now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.MeetingAgenda{}, err
	}
	return a, nil
}

func (s *Store) Update(ctx context.Context, a models.MeetingAgenda) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": a.ID}, bson.M{"$set": bson.M{
		"title":                 strings.TrimSpace(a.Title),
		"content":               a.Content,
		"location":              strings.TrimSpace(a.Location),
		"meeting_datetime_utc":  a.MeetingTime.UTC(),
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

func (s *Store) CountBySemester(ctx context.Context, semesterID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"semester_id": semesterID})
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
