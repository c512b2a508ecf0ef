package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cesargomez89/airscore/internal/domain"
	"github.com/cesargomez89/airscore/internal/logger"
	"github.com/cesargomez89/airscore/internal/storage"
	"github.com/cesargomez89/airscore/internal/store"
)

func setupLibrary(t *testing.T) (*LibraryService, *store.DB, func()) {
	dir := t.TempDir()
	db, err := store.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	svc := NewLibraryService(db, filepath.Join(dir, "library"), logger.Default())
	cleanup := func() {
		if cErr := db.Close(); cErr != nil {
			t.Logf("db.Close error: %v", cErr)
		}
	}
	return svc, db, cleanup
}

func writeTestPDF(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644); err != nil {
		t.Fatalf("Failed to write test pdf: %v", err)
	}
	return path
}

func TestImportFile(t *testing.T) {
	svc, _, cleanup := setupLibrary(t)
	defer cleanup()
	ctx := context.Background()

	src := writeTestPDF(t, t.TempDir(), "sonata.pdf")
	item, err := svc.ImportFile(ctx, src, "Sonata", []string{"Classical"})
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if item.Title != "Sonata" {
		t.Errorf("Expected title 'Sonata', got %s", item.Title)
	}

	// The PDF was copied into the library dir and the URI points at the copy
	path := storage.URIPath(item.URI)
	if filepath.Dir(path) != svc.LibraryDir {
		t.Errorf("Expected file inside library dir, got %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected library file to exist: %v", err)
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != item.ID {
		t.Errorf("Expected the imported item in the library, got %v", items)
	}
}

func TestImportFileDefaultsTitle(t *testing.T) {
	svc, _, cleanup := setupLibrary(t)
	defer cleanup()

	src := writeTestPDF(t, t.TempDir(), "Clair de Lune.pdf")
	item, err := svc.ImportFile(context.Background(), src, "", nil)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if item.Title != "Clair de Lune" {
		t.Errorf("Expected title derived from filename, got %s", item.Title)
	}
}

func TestImportFileRejectsNonPDF(t *testing.T) {
	svc, _, cleanup := setupLibrary(t)
	defer cleanup()

	src := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(src, []byte("not a pdf"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := svc.ImportFile(context.Background(), src, "Notes", nil)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError for non-PDF, got %v", err)
	}
}

func TestImportUpload(t *testing.T) {
	svc, _, cleanup := setupLibrary(t)
	defer cleanup()

	body := bytes.NewReader([]byte("%PDF-1.4 upload"))
	item, err := svc.ImportUpload(context.Background(), body, "upload.pdf", "Uploaded Piece", []string{"New"})
	if err != nil {
		t.Fatalf("ImportUpload failed: %v", err)
	}

	data, err := os.ReadFile(storage.URIPath(item.URI))
	if err != nil {
		t.Fatalf("Failed to read stored upload: %v", err)
	}
	if string(data) != "%PDF-1.4 upload" {
		t.Errorf("Stored content differs from upload: %q", data)
	}

	groups, err := svc.GroupsForMusic(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GroupsForMusic failed: %v", err)
	}
	if len(groups) != 1 || groups[0] != "New" {
		t.Errorf("Expected groups [New], got %v", groups)
	}
}

func TestRemoveDeletesRowAndFile(t *testing.T) {
	svc, _, cleanup := setupLibrary(t)
	defer cleanup()
	ctx := context.Background()

	src := writeTestPDF(t, t.TempDir(), "temp.pdf")
	item, err := svc.ImportFile(ctx, src, "Temp", nil)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}

	if err := svc.Remove(ctx, item.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	got, err := svc.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Error("Expected music row to be gone")
	}
	if _, err := os.Stat(storage.URIPath(item.URI)); !os.IsNotExist(err) {
		t.Error("Expected library file to be removed")
	}

	// Removing it again is a silent no-op
	if err := svc.Remove(ctx, item.ID); err != nil {
		t.Errorf("Expected no-op remove, got %v", err)
	}
}

func TestFilterByGroups(t *testing.T) {
	svc, db, cleanup := setupLibrary(t)
	defer cleanup()
	ctx := context.Background()

	srcDir := t.TempDir()
	a, err := svc.ImportFile(ctx, writeTestPDF(t, srcDir, "a.pdf"), "A", []string{"Wind"})
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	b, err := svc.ImportFile(ctx, writeTestPDF(t, srcDir, "b.pdf"), "B", []string{"Wind", "Solo"})
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}

	items, err := svc.FilterByGroups(ctx, []string{"Wind", "Solo"})
	if err != nil {
		t.Fatalf("FilterByGroups failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != b.ID {
		t.Errorf("Expected only item B, got %v", items)
	}

	if err := svc.SetGroups(ctx, a.ID, []string{"Solo"}); err != nil {
		t.Fatalf("SetGroups failed: %v", err)
	}
	groups, err := db.GetGroupsForMusic(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetGroupsForMusic failed: %v", err)
	}
	if len(groups) != 1 || groups[0] != "Solo" {
		t.Errorf("Expected groups [Solo] after replace, got %v", groups)
	}
}
