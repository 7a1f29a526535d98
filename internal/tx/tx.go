package tx

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/aprilmaraat/simple-account-api/internal/logger"
)

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// withTx stores a transaction in the context
func withTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// FromContext retrieves the transaction from the context. Returns nil if not present.
func FromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}

// Runner executes functions inside a database transaction.
type Runner struct {
	db *sqlx.DB
}

// NewRunner creates a Runner over the given database.
func NewRunner(db *sqlx.DB) *Runner {
	return &Runner{db: db}
}

// Do begins a transaction, stores it in the context passed to fn, and
// commits when fn returns nil. The transaction is rolled back when fn
// returns an error and when fn panics (the panic is re-raised), so the
// transaction is released on every exit path.
func (r *Runner) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return err
	}

	defer func() {
		if rec := recover(); rec != nil {
			_ = tx.Rollback()
			panic(rec)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Log.Errorw("failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit transaction", "error", err)
		return err
	}
	return nil
}
