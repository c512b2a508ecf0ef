package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/cesargomez89/airscore/internal/domain"
)

// CreateOrGetLabel returns the id of the label with the given name, creating
// it first if it does not exist. Calling it twice with the same name returns
// the same id. The colour only applies when the label is created.
func (db *DB) CreateOrGetLabel(ctx context.Context, name, colour string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, &domain.ValidationError{Field: "name", Message: "must not be empty"}
	}

	var labelID int64
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		labelID, err = upsertLabelTx(ctx, tx, name, colour)
		return err
	})
	if err != nil {
		return 0, storeErr("failed to create or get label", err)
	}
	return labelID, nil
}

// GetAllLabels returns the label vocabulary ordered by name.
func (db *DB) GetAllLabels(ctx context.Context) ([]domain.Label, error) {
	var labels []domain.Label
	err := db.SelectContext(ctx, &labels,
		"SELECT id, name, COALESCE(colour, '') AS colour FROM labels ORDER BY name ASC")
	if err != nil {
		return nil, storeErr("failed to list labels", err)
	}
	return labels, nil
}

// GetAllGroups returns every group name, ordered by name.
func (db *DB) GetAllGroups(ctx context.Context) ([]string, error) {
	var names []string
	err := db.SelectContext(ctx, &names, "SELECT name FROM groups ORDER BY name ASC")
	if err != nil {
		return nil, storeErr("failed to list groups", err)
	}
	return names, nil
}

// GetGroupsForMusic returns the group names a music item belongs to.
func (db *DB) GetGroupsForMusic(ctx context.Context, musicID int64) ([]string, error) {
	var names []string
	err := db.SelectContext(ctx, &names, `
		SELECT g.name
		FROM groups g
		JOIN music_groups mg ON g.id = mg.group_id
		WHERE mg.music_id = ?
		ORDER BY g.name ASC`, musicID)
	if err != nil {
		return nil, storeErr("failed to get groups for music", err)
	}
	return names, nil
}

// upsertLabelTx creates the label if absent and returns its id, inside the
// caller's transaction so the insert-or-ignore-then-select pair cannot race.
func upsertLabelTx(ctx context.Context, tx *sqlx.Tx, name, colour string) (int64, error) {
	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO labels (name, colour) VALUES (?, NULLIF(?, ''))",
		name, colour); err != nil {
		return 0, err
	}

	var id int64
	err := tx.GetContext(ctx, &id, "SELECT id FROM labels WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &domain.NotFoundError{Kind: "label", Name: name}
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}
