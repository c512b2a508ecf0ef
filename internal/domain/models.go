package domain

import (
	"strings"
	"time"

	"github.com/cesargomez89/airscore/internal/constants"
)

// MusicItem is a single imported score: a title plus the URI of the stored PDF.
type MusicItem struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	URI       string    `json:"uri" db:"uri"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MusicWithGroups is a music item together with the names of the groups it belongs to.
type MusicWithGroups struct {
	MusicItem
	Groups []string `json:"groups"`
}

// Group is a named collection of music items. Groups are created lazily the
// first time a music item references the name and are never deleted.
type Group struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Label is a shared tag in the global vocabulary. The colour is optional and
// only used for display.
type Label struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Colour string `json:"colour,omitempty" db:"colour"`
}

// MusicMetadata is the one-to-one extension of a music item. Its ID is the
// music item's ID, not an independently generated key.
type MusicMetadata struct {
	ID            int64     `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Composer      string    `json:"composer" db:"composer"`
	Genre         string    `json:"genre" db:"genre"`
	KeySignature  string    `json:"key_signature" db:"key_signature"`
	Rating        *int      `json:"rating,omitempty" db:"rating"`
	Difficulty    *int      `json:"difficulty,omitempty" db:"difficulty"`
	TimeSignature string    `json:"time_signature" db:"time_signature"`
	PageCount     *int      `json:"page_count,omitempty" db:"page_count"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// MusicMetadataWithLabels is the metadata row plus the item's label names.
type MusicMetadataWithLabels struct {
	MusicMetadata
	Labels []string `json:"labels"`
}

// Validate checks the metadata against the storage-boundary rules: the title
// must not be empty and rating/difficulty must be in range when present.
// Out-of-range values are rejected, never clamped.
func (m *MusicMetadata) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if m.Rating != nil && (*m.Rating < constants.RatingMin || *m.Rating > constants.RatingMax) {
		return &ValidationError{Field: "rating", Message: "must be between 1 and 5"}
	}
	if m.Difficulty != nil && (*m.Difficulty < constants.DifficultyMin || *m.Difficulty > constants.DifficultyMax) {
		return &ValidationError{Field: "difficulty", Message: "must be between 1 and 10"}
	}
	if m.PageCount != nil && *m.PageCount < 0 {
		return &ValidationError{Field: "page_count", Message: "must not be negative"}
	}
	return nil
}
