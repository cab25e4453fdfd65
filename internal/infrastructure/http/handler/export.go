package handler

import (
	"log/slog"
	"net/http"

	"github.com/taskverse/taskverse/internal/infrastructure/http/response"
)

// POST /v1/export
func (h *API) createExport(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	name, err := h.exports.Snapshot(r.Context(), identity.UserID)
	if err != nil {
		response.InternalError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "account export stored",
		"user_id", identity.UserID,
		"object", name)
	response.Created(w, map[string]any{"name": name})
}

// GET /v1/export
func (h *API) listExports(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	names, err := h.exports.List(r.Context(), identity.UserID)
	if err != nil {
		response.InternalError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	response.OK(w, map[string]any{"exports": names})
}
