// internal/app/store/profiles/store.go
package profiles

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/dalemusser/humorproject/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/dalemusser/humorproject/internal/app/system/inputval"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no profile matches.
var ErrNotFound = errors.New("profile not found")

// DefaultSearchLimit caps admin user searches.
const DefaultSearchLimit = 50

// Store manages the profiles collection.
type Store struct {
	c *mongo.Collection
}

// New creates a profiles Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("profiles")}
}

// EnsureIndexes creates the unique email index and the recency index used by search.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_profiles_email_ci"),
		},
		{
			Keys:    bson.D{{Key: "created_datetime_utc", Value: -1}},
			Options: options.Index().SetName("idx_profiles_created"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// GetByID loads a profile by its UUID.
func (s *Store) GetByID(ctx context.Context, id string) (models.Profile, error) {
	var p models.Profile
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.Profile{}, ErrNotFound
	}
	return p, err
}

// GetByIDs loads the profiles with the given ids. Unknown ids are skipped.
func (s *Store) GetByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Profile
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureForSignIn returns the profile for email, creating an empty one on
// first sign-in. Names are left blank so the user completes them.
func (s *Store) EnsureForSignIn(ctx context.Context, email string) (models.Profile, error) {
	email = strings.TrimSpace(email)
	now := time.Now().UTC()

	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":                  uuid.New().String(),
			"email":                email,
			"email_ci":             text.Fold(email),
			"is_superadmin":        false,
			"created_datetime_utc": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var p models.Profile
	err := s.c.FindOneAndUpdate(ctx, bson.M{"email_ci": text.Fold(email)}, update, opts).Decode(&p)
	return p, err
}

// UpdateName sets first and last name and stamps the modified time.
func (s *Store) UpdateName(ctx context.Context, id, first, last string) error {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"first_name":            first,
		"first_name_ci":         text.Fold(first),
		"last_name":             last,
		"last_name_ci":          text.Fold(last),
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

// SetSuperAdmin sets or clears the superadmin flag.
func (s *Store) SetSuperAdmin(ctx context.Context, id string, on bool) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"is_superadmin":         on,
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

// IsSuperAdmin reads only the superadmin flag.
func (s *Store) IsSuperAdmin(ctx context.Context, id string) (bool, error) {
	var doc struct {
		IsSuperAdmin bool `bson:"is_superadmin"`
	}
	opts := options.FindOne().SetProjection(bson.M{"is_superadmin": 1})
	err := s.c.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return doc.IsSuperAdmin, nil
}

// Search finds profiles whose email, first name or last name contains term
// (case and diacritic insensitive). A term that parses as a UUID also
// matches the profile id exactly. Results are newest first.
func (s *Store) Search(ctx context.Context, term string, limit int64) ([]models.Profile, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	pattern := regexp.QuoteMeta(text.Fold(term))
	or := []bson.M{
		{"email_ci": bson.M{"$regex": pattern}},
		{"first_name_ci": bson.M{"$regex": pattern}},
		{"last_name_ci": bson.M{"$regex": pattern}},
	}
	if inputval.IsUUID(term) {
		or = append(or, bson.M{"_id": uuid.MustParse(strings.TrimSpace(term)).String()})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_datetime_utc", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{"$or": or}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Profile
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PromoteByEmail marks the profile with email as superadmin, creating the
// profile if it does not exist yet. It reports whether a profile was created.
func (s *Store) PromoteByEmail(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email_ci": text.Fold(email)},
		bson.M{
			"$set": bson.M{"is_superadmin": true, "modified_datetime_utc": now},
			"$setOnInsert": bson.M{
				"_id":                  uuid.New().String(),
				"email":                email,
				"email_ci":             text.Fold(email),
				"created_datetime_utc": now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// Count returns the number of profiles.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
