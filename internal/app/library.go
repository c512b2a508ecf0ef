package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cesargomez89/airscore/internal/constants"
	"github.com/cesargomez89/airscore/internal/domain"
	"github.com/cesargomez89/airscore/internal/logger"
	"github.com/cesargomez89/airscore/internal/storage"
	"github.com/cesargomez89/airscore/internal/store"
)

// LibraryService manages the score library: importing PDFs into the library
// directory and the music rows that reference them.
type LibraryService struct {
	Store      *store.DB
	LibraryDir string
	Logger     *logger.Logger
}

func NewLibraryService(db *store.DB, libraryDir string, log *logger.Logger) *LibraryService {
	return &LibraryService{Store: db, LibraryDir: libraryDir, Logger: log}
}

// ImportUpload stores an uploaded PDF in the library directory and registers
// it as a music item linked to the given groups. The file copy happens first;
// if the insert fails the copied file is removed again.
func (s *LibraryService) ImportUpload(ctx context.Context, r io.Reader, filename, title string, groups []string) (*domain.MusicItem, error) {
	if !strings.EqualFold(filepath.Ext(filename), constants.PDFExtension) {
		return nil, &domain.ValidationError{Field: "file", Message: "only PDF files can be imported"}
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}

	dest, err := storage.SaveReader(r, s.LibraryDir, filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	item, err := s.register(ctx, title, dest, groups)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Music imported", "music_id", item.ID, "title", item.Title, "file", dest)
	return item, nil
}

// ImportFile copies an existing local PDF into the library directory and
// registers it. This is the path used when the client hands over a file
// reference instead of streaming the content.
func (s *LibraryService) ImportFile(ctx context.Context, src, title string, groups []string) (*domain.MusicItem, error) {
	if !strings.EqualFold(filepath.Ext(src), constants.PDFExtension) {
		return nil, &domain.ValidationError{Field: "file", Message: "only PDF files can be imported"}
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	}

	dest, err := storage.CopyFile(src, s.LibraryDir)
	if err != nil {
		return nil, fmt.Errorf("failed to copy into library: %w", err)
	}

	item, err := s.register(ctx, title, dest, groups)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Music imported", "music_id", item.ID, "title", item.Title, "file", dest)
	return item, nil
}

func (s *LibraryService) register(ctx context.Context, title, path string, groups []string) (*domain.MusicItem, error) {
	createdAt := time.Now()
	uri := storage.FileURI(path)

	id, err := s.Store.InsertMusic(ctx, title, uri, groups, createdAt)
	if err != nil {
		// Don't leave an orphan file behind when the row never existed.
		if rmErr := storage.RemoveFile(path); rmErr != nil && !storage.IsNotExist(rmErr) {
			s.Logger.Warn("Failed to clean up imported file", "file", path, "error", rmErr)
		}
		return nil, err
	}

	return &domain.MusicItem{ID: id, Title: title, URI: uri, CreatedAt: createdAt}, nil
}

// List returns every music item with its group names.
func (s *LibraryService) List(ctx context.Context) ([]domain.MusicWithGroups, error) {
	return s.Store.ListAllWithGroups(ctx)
}

// FilterByGroups returns the items that belong to every one of the named groups.
func (s *LibraryService) FilterByGroups(ctx context.Context, groups []string) ([]domain.MusicItem, error) {
	return s.Store.FindByGroups(ctx, groups)
}

// Get returns a single music item, or nil when it does not exist.
func (s *LibraryService) Get(ctx context.Context, id int64) (*domain.MusicItem, error) {
	return s.Store.GetMusic(ctx, id)
}

// Remove deletes a music item; cascades take its associations and metadata.
// The stored PDF is removed best-effort after the row is gone.
func (s *LibraryService) Remove(ctx context.Context, id int64) error {
	item, err := s.Store.GetMusic(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Store.DeleteMusic(ctx, id); err != nil {
		return err
	}

	if item != nil {
		path := storage.URIPath(item.URI)
		if err := storage.RemoveFile(path); err != nil && !storage.IsNotExist(err) {
			s.Logger.Warn("Failed to remove library file", "file", path, "error", err)
		}
		s.Logger.Info("Music deleted", "music_id", id, "title", item.Title)
	}
	return nil
}

// SetGroups replaces the full group membership for a music item.
func (s *LibraryService) SetGroups(ctx context.Context, id int64, groups []string) error {
	return s.Store.SetMusicGroups(ctx, id, groups)
}

// AddToGroup links a music item to one group, creating the group if needed.
func (s *LibraryService) AddToGroup(ctx context.Context, id int64, group string) error {
	return s.Store.AddMusicToGroup(ctx, id, group)
}

// RemoveFromGroup unlinks a music item from one group.
func (s *LibraryService) RemoveFromGroup(ctx context.Context, id int64, group string) error {
	return s.Store.RemoveMusicFromGroup(ctx, id, group)
}

// Groups returns the full group vocabulary.
func (s *LibraryService) Groups(ctx context.Context) ([]string, error) {
	return s.Store.GetAllGroups(ctx)
}

// GroupsForMusic returns the group names one music item belongs to.
func (s *LibraryService) GroupsForMusic(ctx context.Context, id int64) ([]string, error) {
	return s.Store.GetGroupsForMusic(ctx, id)
}
