// internal/app/store/authsessions/store.go
package authsessions

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound means no active session matches: unknown token, expired, or revoked.
var ErrNotFound = errors.New("refresh session not found")

// Session is a refresh session. Only a hash of the refresh token is stored.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProfileID string             `bson:"profile_id"`
	Email     string             `bson:"email"`
	Provider  string             `bson:"provider"`
	TokenHash string             `bson:"token_hash"`

	IP        string `bson:"ip,omitempty"`
	UserAgent string `bson:"user_agent,omitempty"`

	CreatedAt  time.Time  `bson:"created_at"`
	LastUsedAt time.Time  `bson:"last_used_at"`
	ExpiresAt  time.Time  `bson:"expires_at"`
	RevokedAt  *time.Time `bson:"revoked_at,omitempty"`
}

// Store manages refresh sessions.
type Store struct {
	c *mongo.Collection
}

// New creates an auth sessions Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("auth_sessions")}
}

// EnsureIndexes creates the token lookup index and a TTL index on expiry.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token_hash", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_auth_sessions_token"),
		},
		{
			Keys:    bson.D{{Key: "profile_id", Value: 1}},
			Options: options.Index().SetName("idx_auth_sessions_profile"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_auth_sessions_ttl"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a new refresh session.
func (s *Store) Create(ctx context.Context, sess Session) (Session, error) {
	now := time.Now().UTC()
	if sess.ID.IsZero() {
		sess.ID = primitive.NewObjectID()
	}
	sess.CreatedAt = now
	sess.LastUsedAt = now
	if _, err := s.c.InsertOne(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// FindActive returns the unrevoked, unexpired session holding tokenHash.
func (s *Store) FindActive(ctx context.Context, tokenHash string) (Session, error) {
	var sess Session
	err := s.c.FindOne(ctx, bson.M{
		"token_hash": tokenHash,
		"revoked_at": bson.M{"$exists": false},
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&sess)
	if err == mongo.ErrNoDocuments {
		return Session{}, ErrNotFound
	}
	return sess, err
}

// Rotate swaps the stored token hash. It fails with ErrNotFound when oldHash
// is no longer current, so a refresh token can be used only once.
func (s *Store) Rotate(ctx context.Context, id primitive.ObjectID, oldHash, newHash string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "token_hash": oldHash, "revoked_at": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"token_hash": newHash, "last_used_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Revoke ends a session. Revoking an unknown session is not an error.
func (s *Store) Revoke(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "revoked_at": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"revoked_at": time.Now().UTC()}},
	)
	return err
}

// DeleteStale removes sessions that expired, or were revoked, before cutoff.
// The TTL index covers expiry on its own; this also sweeps revoked rows.
func (s *Store) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"expires_at": bson.M{"$lt": cutoff}},
		bson.M{"revoked_at": bson.M{"$lt": cutoff}},
	}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
