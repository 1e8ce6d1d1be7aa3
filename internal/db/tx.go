package db

import (
	"context"
	"database/sql"
)

// MakeTx begins a transaction bound to ctx. Calling discard after commit is a no-op,
// so callers can always defer it.
type MakeTx = func(ctx context.Context) (tx *Queries, discard func(), commit func() error, err error)

func NewMakeTx(database *sql.DB) MakeTx {
	return func(ctx context.Context) (*Queries, func(), func() error, error) {
		sqltx, err := database.BeginTx(ctx, nil)
		if err != nil {
			return nil, nil, nil, err
		}
		discard := func() {
			// ErrTxDone after a commit is expected
			_ = sqltx.Rollback()
		}
		return New(sqltx), discard, sqltx.Commit, nil
	}
}
