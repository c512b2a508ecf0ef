package app

import (
	"context"

	"github.com/cesargomez89/airscore/internal/domain"
	"github.com/cesargomez89/airscore/internal/logger"
	"github.com/cesargomez89/airscore/internal/store"
)

// MetadataService manages per-item descriptive metadata and the label
// vocabulary.
type MetadataService struct {
	Store  *store.DB
	Logger *logger.Logger
}

func NewMetadataService(db *store.DB, log *logger.Logger) *MetadataService {
	return &MetadataService{Store: db, Logger: log}
}

// SaveCompleteMetadata saves the metadata row and then replaces the item's
// labels. The two steps commit independently: if the label assignment fails
// the metadata stays saved and the labels stay unchanged. Callers must treat
// this as two units of work, not one atomic save.
func (s *MetadataService) SaveCompleteMetadata(ctx context.Context, musicID int64, meta *domain.MusicMetadata, labelNames []string) error {
	if err := s.Store.SaveMusicMetadata(ctx, musicID, meta); err != nil {
		return err
	}
	if err := s.Store.AssignLabelsToMusic(ctx, musicID, labelNames); err != nil {
		return err
	}

	s.Logger.Info("Metadata saved", "music_id", musicID, "title", meta.Title, "labels", len(labelNames))
	return nil
}

// Get returns the metadata and labels for a music item, or nil when no
// metadata has been saved yet.
func (s *MetadataService) Get(ctx context.Context, musicID int64) (*domain.MusicMetadataWithLabels, error) {
	return s.Store.GetMusicWithMetadata(ctx, musicID)
}

// Labels returns the label vocabulary ordered by name.
func (s *MetadataService) Labels(ctx context.Context) ([]domain.Label, error) {
	return s.Store.GetAllLabels(ctx)
}

// CreateLabel adds a label to the vocabulary (or returns the existing one).
func (s *MetadataService) CreateLabel(ctx context.Context, name, colour string) (*domain.Label, error) {
	id, err := s.Store.CreateOrGetLabel(ctx, name, colour)
	if err != nil {
		return nil, err
	}
	return &domain.Label{ID: id, Name: name, Colour: colour}, nil
}
