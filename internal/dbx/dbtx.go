// Package dbx lets the user and photo repositories run over either a
// plain connection or a transaction: DBTX is the common interface, WithTx
// scopes a function to one transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the slice of database/sql the repositories need. Both *sql.DB
// and *sql.Tx satisfy it, so a repository built over a transaction (see
// the RepositoryFactory types) shares the query code with one built over
// the connection.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with a transactional handle, and
// commits on success or rolls back on error/panic. Panics are rethrown.
// Signup relies on it to keep the username check and the insert in one
// transaction.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
