package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cesargomez89/airscore/internal/domain"
)

// InsertMusic inserts a music row and links it to every named group, creating
// missing groups on the fly. The whole operation is one transaction: on any
// failure nothing persists, not even a partial group linkage.
func (db *DB) InsertMusic(ctx context.Context, title, uri string, groupNames []string, createdAt time.Time) (int64, error) {
	if strings.TrimSpace(title) == "" {
		return 0, &domain.ValidationError{Field: "title", Message: "must not be empty"}
	}

	var musicID int64
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO music (title, uri, created_at) VALUES (?, ?, ?)",
			title, uri, createdAt)
		if err != nil {
			return err
		}
		musicID, err = res.LastInsertId()
		if err != nil {
			return err
		}

		for _, name := range dedupe(groupNames) {
			groupID, err := upsertGroupTx(ctx, tx, name)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO music_groups (music_id, group_id) VALUES (?, ?)",
				musicID, groupID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, storeErr("failed to insert music", err)
	}
	return musicID, nil
}

// GetMusic returns the music row for id, or nil when it does not exist.
func (db *DB) GetMusic(ctx context.Context, id int64) (*domain.MusicItem, error) {
	var item domain.MusicItem
	err := db.GetContext(ctx, &item,
		"SELECT id, title, uri, created_at FROM music WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("failed to get music", err)
	}
	return &item, nil
}

// ListAllWithGroups returns every music row with its group names resolved.
// Rows come back in the store's natural order; callers wanting alphabetical
// order sort client-side.
func (db *DB) ListAllWithGroups(ctx context.Context) ([]domain.MusicWithGroups, error) {
	var items []domain.MusicItem
	if err := db.SelectContext(ctx, &items,
		"SELECT id, title, uri, created_at FROM music"); err != nil {
		return nil, storeErr("failed to list music", err)
	}

	result := make([]domain.MusicWithGroups, 0, len(items))
	for _, item := range items {
		groups, err := db.GetGroupsForMusic(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.MusicWithGroups{MusicItem: item, Groups: groups})
	}
	return result, nil
}

// FindByGroups returns the music items that belong to every one of the named
// groups (AND semantics). An empty name set returns an empty result.
func (db *DB) FindByGroups(ctx context.Context, groupNames []string) ([]domain.MusicItem, error) {
	names := dedupe(groupNames)
	if len(names) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT m.id, m.title, m.uri, m.created_at
		FROM music m
		JOIN music_groups mg ON m.id = mg.music_id
		JOIN groups g ON mg.group_id = g.id
		WHERE g.name IN (?)
		GROUP BY m.id
		HAVING COUNT(DISTINCT g.name) = ?`, names, len(names))
	if err != nil {
		return nil, storeErr("failed to build group filter", err)
	}

	var items []domain.MusicItem
	if err := db.SelectContext(ctx, &items, db.Rebind(query), args...); err != nil {
		return nil, storeErr("failed to find music by groups", err)
	}
	return items, nil
}

// DeleteMusic removes the music row. The cascading foreign keys take its group
// and label associations and its metadata row with it. Deleting an id that
// does not exist is a silent no-op.
func (db *DB) DeleteMusic(ctx context.Context, id int64) error {
	_, err := db.ExecContext(ctx, "DELETE FROM music WHERE id = ?", id)
	return storeErr("failed to delete music", err)
}

// SetMusicGroups replaces the full group membership for a music item: the
// existing associations are removed and the new set inserted, transactionally.
func (db *DB) SetMusicGroups(ctx context.Context, musicID int64, groupNames []string) error {
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM music_groups WHERE music_id = ?", musicID); err != nil {
			return err
		}
		for _, name := range dedupe(groupNames) {
			groupID, err := upsertGroupTx(ctx, tx, name)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO music_groups (music_id, group_id) VALUES (?, ?)",
				musicID, groupID); err != nil {
				return err
			}
		}
		return nil
	})
	return storeErr("failed to set music groups", err)
}

// AddMusicToGroup links a single music item to a group, creating the group if
// needed. Linking an already-linked pair is a no-op.
func (db *DB) AddMusicToGroup(ctx context.Context, musicID int64, groupName string) error {
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		groupID, err := upsertGroupTx(ctx, tx, groupName)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO music_groups (music_id, group_id) VALUES (?, ?)",
			musicID, groupID)
		return err
	})
	return storeErr("failed to add music to group", err)
}

// RemoveMusicFromGroup unlinks a music item from a group. The group row itself
// stays in the vocabulary.
func (db *DB) RemoveMusicFromGroup(ctx context.Context, musicID int64, groupName string) error {
	_, err := db.ExecContext(ctx, `
		DELETE FROM music_groups
		WHERE music_id = ? AND group_id = (SELECT id FROM groups WHERE name = ?)`,
		musicID, groupName)
	return storeErr("failed to remove music from group", err)
}

// upsertGroupTx creates the group if absent and returns its id, inside the
// caller's transaction so the insert-or-ignore-then-select pair cannot race.
func upsertGroupTx(ctx context.Context, tx *sqlx.Tx, name string) (int64, error) {
	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO groups (name) VALUES (?)", name); err != nil {
		return 0, err
	}

	var id int64
	err := tx.GetContext(ctx, &id, "SELECT id FROM groups WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &domain.NotFoundError{Kind: "group", Name: name}
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// dedupe removes duplicate names while preserving first-seen order.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
