package httpapp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/form/v4"

	"github.com/cesargomez89/airscore/internal/app"
	"github.com/cesargomez89/airscore/internal/domain"
	"github.com/cesargomez89/airscore/internal/logger"
	"github.com/cesargomez89/airscore/internal/store"
)

type Handler struct {
	Library   *app.LibraryService
	Metadata  *app.MetadataService
	Store     *store.DB
	Logger    *logger.Logger
	decoder   *form.Decoder
	maxUpload int64
}

func NewHandler(lib *app.LibraryService, meta *app.MetadataService, db *store.DB, log *logger.Logger, maxUploadBytes int64) *Handler {
	return &Handler{
		Library:   lib,
		Metadata:  meta,
		Store:     db,
		Logger:    log.WithComponent("http"),
		decoder:   form.NewDecoder(),
		maxUpload: maxUploadBytes,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/music", h.ListMusic)
		r.Post("/music/import", h.ImportMusic)
		r.Delete("/music/{id}", h.DeleteMusic)
		r.Get("/music/{id}/file", h.MusicFile)

		r.Get("/music/{id}/groups", h.MusicGroups)
		r.Put("/music/{id}/groups", h.SetMusicGroups)
		r.Post("/music/{id}/groups/{name}", h.AddMusicGroup)
		r.Delete("/music/{id}/groups/{name}", h.RemoveMusicGroup)

		r.Get("/music/{id}/metadata", h.GetMetadata)
		r.Put("/music/{id}/metadata", h.SaveMetadata)

		r.Get("/groups", h.ListGroups)
		r.Get("/labels", h.ListLabels)
		r.Post("/labels", h.CreateLabel)

		r.Post("/admin/init", h.InitSchema)
		r.Post("/admin/reset", h.ResetSchema)
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			h.Logger.Error("Failed to encode response", "error", err)
		}
	}
}

// respondError maps domain error kinds onto HTTP statuses. Anything that is
// not a validation problem surfaces as a generic failure; the underlying
// error is logged, not detailed to the client.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{ve.Field: ve.Message})
		return
	}

	h.Logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	h.respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "operation failed"})
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, &domain.ValidationError{Field: "id", Message: "must be an integer"}
	}
	return id, nil
}
