package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/cesargomez89/airscore/internal/domain"
)

type DB struct {
	*sqlx.DB
}

// Open opens (or creates) the SQLite database at path and ensures the schema
// exists. Foreign keys are enabled through the DSN so cascades hold on every
// pooled connection, not just the one a plain PRAGMA exec happens to hit.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)",
		path,
	)
	sqlxDB, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// SQLite works best with a single writer
	sqlxDB.SetMaxOpenConns(1)
	sqlxDB.SetMaxIdleConns(1)
	sqlxDB.SetConnMaxLifetime(0)

	db := &DB{sqlxDB}
	if err := db.Initialize(context.Background()); err != nil {
		sqlxDB.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// withTx runs fn inside a transaction. Any error from fn rolls the whole
// transaction back before it propagates, so no partial writes survive.
func (db *DB) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// storeErr wraps a database failure as a domain.StoreError. Domain error kinds
// produced inside the operation pass through untouched.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *domain.ValidationError
	var nfe *domain.NotFoundError
	var se *domain.SchemaError
	var ste *domain.StoreError
	if errors.As(err, &ve) || errors.As(err, &nfe) || errors.As(err, &se) || errors.As(err, &ste) {
		return err
	}
	return &domain.StoreError{Op: op, Err: err}
}
