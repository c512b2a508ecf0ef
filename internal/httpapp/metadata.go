package httpapp

import (
	"encoding/json"
	"net/http"

	"github.com/cesargomez89/airscore/internal/httpapp/dto"
)

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close() //nolint:errcheck // deferred cleanup
	return json.NewDecoder(r.Body).Decode(v)
}

// GetMetadata returns the saved metadata and labels for a music item. Absence
// of a metadata row is a 404, not a server failure.
func (h *Handler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	meta, err := h.Metadata.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if meta == nil {
		h.respondJSON(w, http.StatusNotFound, map[string]string{"error": "no metadata for this item"})
		return
	}
	h.respondJSON(w, http.StatusOK, meta)
}

// SaveMetadata fully replaces the metadata row and, when label names are
// given, the item's label set. Field validation happens here, before the
// storage boundary sees the payload.
func (h *Handler) SaveMetadata(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var req dto.MetadataRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		h.respondJSON(w, http.StatusBadRequest, dto.ToMap(errs))
		return
	}

	if err := h.Metadata.SaveCompleteMetadata(r.Context(), id, req.ToDomain(), req.Labels); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListLabels(w http.ResponseWriter, r *http.Request) {
	labels, err := h.Metadata.Labels(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, labels)
}

func (h *Handler) CreateLabel(w http.ResponseWriter, r *http.Request) {
	var req dto.LabelRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		h.respondJSON(w, http.StatusBadRequest, dto.ToMap(errs))
		return
	}

	label, err := h.Metadata.CreateLabel(r.Context(), req.Name, req.Colour)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, label)
}
