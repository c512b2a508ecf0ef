package httpapp

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/airscore/internal/httpapp/dto"
	"github.com/cesargomez89/airscore/internal/storage"
)

// ListMusic returns the whole library with groups resolved, or, when one or
// more ?groups= params are present, only the items that belong to every named
// group.
func (h *Handler) ListMusic(w http.ResponseWriter, r *http.Request) {
	var q dto.ListQuery
	if err := h.decoder.Decode(&q, r.URL.Query()); err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid query"})
		return
	}

	if len(q.Groups) > 0 {
		items, err := h.Library.FilterByGroups(r.Context(), q.Groups)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		h.respondJSON(w, http.StatusOK, items)
		return
	}

	items, err := h.Library.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, items)
}

// ImportMusic accepts a multipart upload: a "file" part holding the PDF plus
// optional "title" and repeated "groups" fields.
func (h *Handler) ImportMusic(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart request"})
		return
	}

	var f dto.ImportForm
	if err := h.decoder.Decode(&f, url.Values(r.MultipartForm.Value)); err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form fields"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"file": "missing file part"})
		return
	}
	defer file.Close()

	item, err := h.Library.ImportUpload(r.Context(), file, header.Filename, f.Title, f.Groups)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, item)
}

func (h *Handler) DeleteMusic(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.Library.Remove(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MusicFile serves the stored PDF for a music item.
func (h *Handler) MusicFile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	item, err := h.Library.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if item == nil {
		h.respondJSON(w, http.StatusNotFound, map[string]string{"error": "music not found"})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, storage.URIPath(item.URI))
}

func (h *Handler) MusicGroups(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	groups, err := h.Library.GroupsForMusic(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string][]string{"groups": groups})
}

func (h *Handler) SetMusicGroups(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var req dto.SetGroupsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.Library.SetGroups(r.Context(), id, req.Groups); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddMusicGroup(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.Library.AddToGroup(r.Context(), id, chi.URLParam(r, "name")); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveMusicGroup(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.Library.RemoveFromGroup(r.Context(), id, chi.URLParam(r, "name")); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Library.Groups(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string][]string{"groups": groups})
}
