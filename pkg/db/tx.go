// pkg/db/tx.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// Executor defines the database operations repositories need.
// Both *sqlx.DB and *sqlx.Tx implement these methods, so a repository
// method can run against a plain connection or inside a transaction.
type Executor interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Transactor runs a function inside a single database transaction.
// If fn returns an error, all writes performed through the Executor it
// received are rolled back; otherwise they are committed together.
// Concurrent writers to the same rows are serialized by the database's
// row-level locks, so a "read balance, validate, write balance" sequence
// inside one WithinTx call cannot interleave with another.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(q Executor) error) error
}

// NewTransactor returns a Transactor backed by the given connection pool.
func NewTransactor(conn *sqlx.DB) Transactor {
	return &sqlxTransactor{conn: conn}
}

type sqlxTransactor struct {
	conn *sqlx.DB
}

func (t *sqlxTransactor) WithinTx(ctx context.Context, fn func(q Executor) error) error {
	tx, err := t.conn.BeginTxx(ctx, nil)
	if err != nil {
		return &StorageError{Op: "begin transaction", Err: err}
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			slog.Error("Failed to roll back transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "commit transaction", Err: err}
	}
	return nil
}

// StorageError marks a failure in the persistence layer (connectivity,
// constraint violation) as opposed to an expected business outcome.
// Callers must not assume partial success once they see one.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err originated in the persistence layer.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
