package repositories

import (
	"context"
	"fmt"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
)

// ErrStaleVersion is returned by compare-and-swap writes when the stored version moved on.
var ErrStaleVersion = fmt.Errorf("%w: stale version", apperrors.ErrConflict)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}
