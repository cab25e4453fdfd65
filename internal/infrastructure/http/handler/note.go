package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskverse/taskverse/internal/infrastructure/http/response"
)

// GET /v1/notes
func (h *API) listNotes(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	notes, err := h.notes.List(r.Context(), identity.UserID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]noteDTO, len(notes))
	for i := range notes {
		dtos[i] = mapNoteToDTO(&notes[i])
	}
	response.OK(w, map[string]any{"notes": dtos})
}

// POST /v1/notes
func (h *API) createNote(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	created, err := h.notes.Add(r.Context(), identity.UserID, req.Content)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.Created(w, map[string]any{"note": mapNoteToDTO(created)})
}

// PATCH /v1/notes/{noteID}
func (h *API) updateNote(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	updated, err := h.notes.Update(r.Context(), identity.UserID, chi.URLParam(r, "noteID"), req.Content)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, map[string]any{"note": mapNoteToDTO(updated)})
}

// DELETE /v1/notes/{noteID}
func (h *API) deleteNote(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	if err := h.notes.Delete(r.Context(), identity.UserID, chi.URLParam(r, "noteID")); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.NoContent(w)
}

// DELETE /v1/notes
func (h *API) deleteAllNotes(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	deleted, err := h.notes.DeleteAll(r.Context(), identity.UserID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, map[string]any{"deleted": deleted})
}
