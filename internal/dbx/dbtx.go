// Package dbx provides the small database/sql abstractions shared by the SQL
// repositories: a query interface satisfied by *sql.DB and *sql.Tx,
// transaction helpers, and the per-driver dialect differences.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxBeginner is satisfied by *sql.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// InTx runs fn inside a transaction and returns its value once the commit
// went through. An error from fn, a failed commit or a panic rolls back;
// panics are rethrown. On failure the zero T is returned.
//
//	id, err := dbx.InTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) (int64, error) {
//	    var id int64
//	    err := tx.QueryRowContext(ctx, "INSERT ... RETURNING id").Scan(&id)
//	    return id, err
//	})
func InTx[T any](ctx context.Context, db TxBeginner, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) (T, error)) (res T, err error) {
	var zero T

	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return zero, err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		_ = tx.Rollback()
		if p := recover(); p != nil {
			panic(p)
		}
		res = zero
	}()

	res, err = fn(ctx, tx)
	if err != nil {
		return zero, err
	}
	if err = tx.Commit(); err != nil {
		return zero, err
	}
	committed = true
	return res, nil
}

// WithTx is InTx for functions without a result.
func WithTx(ctx context.Context, db TxBeginner, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	_, err := InTx(ctx, db, opts, func(ctx context.Context, tx DBTX) (struct{}, error) {
		return struct{}{}, fn(ctx, tx)
	})
	return err
}
