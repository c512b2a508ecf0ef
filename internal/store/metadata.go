package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cesargomez89/airscore/internal/domain"
)

// SaveMusicMetadata upserts the metadata row keyed by musicID: a full
// overwrite, not a partial patch. Out-of-range rating or difficulty is
// rejected before the write. The metadata title is mirrored onto the music
// row in the same transaction; that is the only path that ever changes a
// music item's title.
func (db *DB) SaveMusicMetadata(ctx context.Context, musicID int64, meta *domain.MusicMetadata) error {
	if err := meta.Validate(); err != nil {
		return err
	}

	now := time.Now()
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO music_metadata (
				id, title, composer, genre, key_signature,
				rating, difficulty, time_signature, page_count,
				created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				composer = excluded.composer,
				genre = excluded.genre,
				key_signature = excluded.key_signature,
				rating = excluded.rating,
				difficulty = excluded.difficulty,
				time_signature = excluded.time_signature,
				page_count = excluded.page_count,
				updated_at = excluded.updated_at`,
			musicID, meta.Title, meta.Composer, meta.Genre, meta.KeySignature,
			meta.Rating, meta.Difficulty, meta.TimeSignature, meta.PageCount,
			now, now)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE music SET title = ? WHERE id = ?", meta.Title, musicID)
		return err
	})
	return storeErr("failed to save music metadata", err)
}

// AssignLabelsToMusic replaces the complete label set for a music item:
// delete all existing associations, then create-or-get each label and link
// it, in one transaction.
//
// An empty labelNames is a deliberate no-op rather than "clear all labels",
// so a call that wasn't meant to touch labels cannot wipe them. This
// asymmetry with the always-full-replace metadata save is part of the
// contract.
func (db *DB) AssignLabelsToMusic(ctx context.Context, musicID int64, labelNames []string) error {
	if len(labelNames) == 0 {
		return nil
	}

	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM music_labels WHERE music_id = ?", musicID); err != nil {
			return err
		}
		for _, name := range dedupe(labelNames) {
			labelID, err := upsertLabelTx(ctx, tx, name, "")
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO music_labels (music_id, label_id) VALUES (?, ?)",
				musicID, labelID); err != nil {
				return err
			}
		}
		return nil
	})
	return storeErr("failed to assign labels", err)
}

// GetMusicWithMetadata returns the metadata row for musicID with its label
// names, or nil when no metadata has been saved for the item.
func (db *DB) GetMusicWithMetadata(ctx context.Context, musicID int64) (*domain.MusicMetadataWithLabels, error) {
	var meta domain.MusicMetadata
	err := db.GetContext(ctx, &meta, `
		SELECT id, title, COALESCE(composer, '') AS composer, COALESCE(genre, '') AS genre,
			COALESCE(key_signature, '') AS key_signature, rating, difficulty,
			COALESCE(time_signature, '') AS time_signature, page_count,
			created_at, updated_at
		FROM music_metadata WHERE id = ?`, musicID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("failed to get music metadata", err)
	}

	var labels []string
	err = db.SelectContext(ctx, &labels, `
		SELECT l.name
		FROM labels l
		JOIN music_labels ml ON l.id = ml.label_id
		WHERE ml.music_id = ?
		ORDER BY l.name ASC`, musicID)
	if err != nil {
		return nil, storeErr("failed to get labels for music", err)
	}

	return &domain.MusicMetadataWithLabels{MusicMetadata: meta, Labels: labels}, nil
}
