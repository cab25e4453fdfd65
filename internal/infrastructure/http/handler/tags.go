package handler

import (
	"encoding/json"
	"net/http"

	"github.com/taskverse/taskverse/internal/infrastructure/http/response"
)

// POST /v1/tags:suggest
//
// Upstream model failures surface as 502 so the client can fall back to
// manual tagging; task state is never touched.
func (h *API) suggestTags(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}
	if req.Description == "" {
		response.ValidationError(w, "description", "required field missing")
		return
	}

	tags, err := h.tagger.SuggestTags(r.Context(), req.Description)
	if err != nil {
		response.BadGateway(w, r, err)
		return
	}
	response.OK(w, map[string]any{"tags": tags})
}
