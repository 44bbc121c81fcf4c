// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Ensurer is implemented by every store that owns indexes.
type Ensurer interface {
	EnsureIndexes(ctx context.Context) error
}

// Collection names a store for error reporting.
type Collection struct {
	Name  string
	Store Ensurer
}

/*
EnsureAll is called at startup. Each EnsureIndexes is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, logger *zap.Logger, cols ...Collection) error {
	var problems []string
	for _, c := range cols {
		if err := c.Store.EnsureIndexes(ctx); err != nil {
			problems = append(problems, c.Name+": "+err.Error())
			continue
		}
		logger.Debug("indexes ensured", zap.String("collection", c.Name))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
