package httpapp

import "net/http"

// InitSchema re-runs schema creation. Safe to call at any time; existing
// tables are untouched.
func (h *Handler) InitSchema(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Initialize(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ResetSchema drops every table and recreates the schema. Development tool;
// all data is lost.
func (h *Handler) ResetSchema(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.Logger.Warn("Database reset via admin endpoint")
	h.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
