package txn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/humorproject/internal/app/system/txn"
	"github.com/dalemusser/humorproject/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestIsNotSupported(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":                  {nil, false},
		"unrelated":            {errors.New("duplicate key"), false},
		"illegal operation":    {mongo.CommandError{Code: 20}, true},
		"code 51":              {mongo.CommandError{Code: 51}, true},
		"not in transaction":   {mongo.CommandError{Code: 263}, true},
		"other code":           {mongo.CommandError{Code: 11000}, false},
		"standalone message":   {errors.New("Transaction numbers are only allowed on a Replica Set member or mongos"), true},
		"sessions unsupported": {errors.New("sessions are not supported by this deployment"), true},
		"transaction alone":    {errors.New("transaction aborted"), false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := txn.IsNotSupported(tc.err); got != tc.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestRun_CommitsWrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	coll := db.Collection("submissions")
	// Collections must exist before a transaction writes to them.
	if err := db.CreateCollection(ctx, "submissions"); err != nil {
		t.Fatalf("create collection: %v", err)
	}

	err := txn.Run(ctx, db, zap.NewNop(), func(ctx context.Context) error {
		_, err := coll.InsertOne(ctx, bson.M{"content": "a pun"})
		return err
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestRun_ReturnsCallbackError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	boom := errors.New("boom")
	err := txn.Run(ctx, db, zap.NewNop(), func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("Run err = %v, want boom", err)
	}
}
