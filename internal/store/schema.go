package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cesargomez89/airscore/internal/domain"
)

const Schema = `
CREATE TABLE IF NOT EXISTS music (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	uri TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS groups (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS music_groups (
	music_id INTEGER NOT NULL,
	group_id INTEGER NOT NULL,
	PRIMARY KEY (music_id, group_id),
	FOREIGN KEY (music_id) REFERENCES music (id) ON DELETE CASCADE,
	FOREIGN KEY (group_id) REFERENCES groups (id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS music_metadata (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	composer TEXT,
	genre TEXT,
	key_signature TEXT,
	rating INTEGER CHECK (rating BETWEEN 1 AND 5),
	difficulty INTEGER CHECK (difficulty BETWEEN 1 AND 10),
	time_signature TEXT,
	page_count INTEGER,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (id) REFERENCES music (id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS labels (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	colour TEXT
);

CREATE TABLE IF NOT EXISTS music_labels (
	music_id INTEGER NOT NULL,
	label_id INTEGER NOT NULL,
	PRIMARY KEY (music_id, label_id),
	FOREIGN KEY (music_id) REFERENCES music (id) ON DELETE CASCADE,
	FOREIGN KEY (label_id) REFERENCES labels (id) ON DELETE CASCADE
);
`

// dropOrder lists every table, dependents before the tables they reference.
var dropOrder = []string{
	"music_labels",
	"music_groups",
	"music_metadata",
	"labels",
	"groups",
	"music",
}

// Initialize creates any missing tables. Existing tables are left untouched,
// so it is safe to call repeatedly.
func (db *DB) Initialize(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return &domain.SchemaError{Op: "initialize", Err: err}
	}
	return nil
}

// DropAll drops the named tables (default: all six, in dependency order)
// inside one all-or-nothing transaction. Intended for development and tests.
func (db *DB) DropAll(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		tables = dropOrder
	}

	known := make(map[string]bool, len(dropOrder))
	for _, t := range dropOrder {
		known[t] = true
	}

	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, table := range tables {
			if !known[table] {
				return fmt.Errorf("unknown table %q", table)
			}
			if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &domain.SchemaError{Op: "drop", Err: err}
	}
	return nil
}

// Reset drops everything and recreates the schema from scratch.
func (db *DB) Reset(ctx context.Context) error {
	if err := db.DropAll(ctx); err != nil {
		return err
	}
	return db.Initialize(ctx)
}
