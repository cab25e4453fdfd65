package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskverse/taskverse/internal/application/template"
	"github.com/taskverse/taskverse/internal/domain"
	"github.com/taskverse/taskverse/internal/infrastructure/http/response"
)

// GET /v1/templates
func (h *API) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List(r.Context())
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]templateDTO, len(templates))
	for i := range templates {
		dtos[i] = mapTemplateToDTO(&templates[i])
	}
	response.OK(w, map[string]any{"templates": dtos})
}

// POST /v1/templates
func (h *API) createTemplate(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		AuthorName  string `json:"authorName"`
		Tasks       []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Priority    string `json:"priority"`
		} `json:"tasks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	params := template.CreateParams{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	for _, t := range req.Tasks {
		params.Tasks = append(params.Tasks, template.TaskParams{
			Title:       t.Title,
			Description: t.Description,
			Priority:    domain.TaskPriority(t.Priority),
		})
	}

	authorName := req.AuthorName
	if authorName == "" {
		authorName = identity.Email
	}

	created, err := h.templates.Create(r.Context(), identity.UserID, authorName, params)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "template created",
		"template_id", created.ID,
		"author_id", identity.UserID)
	response.Created(w, map[string]any{"template": mapTemplateToDTO(created)})
}

// POST /v1/templates/{templateID}:apply
//
// Materializes the template into the caller's personal collection as one
// atomic batch.
func (h *API) applyTemplate(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)
	templateID := chi.URLParam(r, "templateID")

	batch, err := h.templates.Materialize(r.Context(), templateID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	created, err := h.tasks.CreateBatch(r.Context(), domain.UserScope(identity.UserID), batch)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "template applied",
		"template_id", templateID,
		"tasks_created", len(created))
	response.Created(w, map[string]any{"tasks": mapTasksToDTO(created)})
}
