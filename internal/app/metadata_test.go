package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cesargomez89/airscore/internal/domain"
	"github.com/cesargomez89/airscore/internal/logger"
	"github.com/cesargomez89/airscore/internal/store"
)

func setupMetadata(t *testing.T) (*MetadataService, *store.DB, func()) {
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	svc := NewMetadataService(db, logger.Default())
	cleanup := func() {
		if cErr := db.Close(); cErr != nil {
			t.Logf("db.Close error: %v", cErr)
		}
	}
	return svc, db, cleanup
}

func ratingPtr(n int) *int { return &n }

func TestSaveCompleteMetadata(t *testing.T) {
	svc, db, cleanup := setupMetadata(t)
	defer cleanup()
	ctx := context.Background()

	id, err := db.InsertMusic(ctx, "Scherzo", "file:///scherzo.pdf", nil, time.Now())
	if err != nil {
		t.Fatalf("InsertMusic failed: %v", err)
	}

	meta := &domain.MusicMetadata{
		Title:    "Scherzo No. 2",
		Composer: "Chopin",
		Rating:   ratingPtr(4),
	}
	if err := svc.SaveCompleteMetadata(ctx, id, meta, []string{"concert", "b-flat"}); err != nil {
		t.Fatalf("SaveCompleteMetadata failed: %v", err)
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected metadata to be returned")
	}
	if got.Title != "Scherzo No. 2" || got.Composer != "Chopin" {
		t.Errorf("Metadata changed on roundtrip: %+v", got.MusicMetadata)
	}
	if len(got.Labels) != 2 {
		t.Errorf("Expected 2 labels, got %v", got.Labels)
	}

	// Saving again without labels keeps the existing label set
	if err := svc.SaveCompleteMetadata(ctx, id, meta, nil); err != nil {
		t.Fatalf("SaveCompleteMetadata (no labels) failed: %v", err)
	}
	got, _ = svc.Get(ctx, id)
	if len(got.Labels) != 2 {
		t.Errorf("Expected labels untouched by empty list, got %v", got.Labels)
	}
}

func TestSaveCompleteMetadataInvalidRating(t *testing.T) {
	svc, db, cleanup := setupMetadata(t)
	defer cleanup()
	ctx := context.Background()

	id, err := db.InsertMusic(ctx, "Polonaise", "file:///polonaise.pdf", nil, time.Now())
	if err != nil {
		t.Fatalf("InsertMusic failed: %v", err)
	}

	err = svc.SaveCompleteMetadata(ctx, id, &domain.MusicMetadata{Title: "Polonaise", Rating: ratingPtr(6)}, nil)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Error("Expected no metadata after rejected save")
	}
}

func TestGetMetadataAbsent(t *testing.T) {
	svc, db, cleanup := setupMetadata(t)
	defer cleanup()
	ctx := context.Background()

	id, err := db.InsertMusic(ctx, "Berceuse", "file:///berceuse.pdf", nil, time.Now())
	if err != nil {
		t.Fatalf("InsertMusic failed: %v", err)
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for absent metadata, got %+v", got)
	}
}

func TestCreateLabel(t *testing.T) {
	svc, _, cleanup := setupMetadata(t)
	defer cleanup()
	ctx := context.Background()

	label, err := svc.CreateLabel(ctx, "recital", "#00ff00")
	if err != nil {
		t.Fatalf("CreateLabel failed: %v", err)
	}

	again, err := svc.CreateLabel(ctx, "recital", "")
	if err != nil {
		t.Fatalf("CreateLabel (repeat) failed: %v", err)
	}
	if again.ID != label.ID {
		t.Errorf("Expected same id for same name, got %d and %d", label.ID, again.ID)
	}

	labels, err := svc.Labels(ctx)
	if err != nil {
		t.Fatalf("Labels failed: %v", err)
	}
	if len(labels) != 1 {
		t.Errorf("Expected 1 label, got %d", len(labels))
	}
}
