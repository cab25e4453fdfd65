// Package handler adapts HTTP requests to application service calls. All
// routes live under /v1 and require an authenticated caller; the scope a task
// operation runs against is either the caller's personal collection or a
// workspace the caller is a member of.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskverse/taskverse/internal/application/export"
	"github.com/taskverse/taskverse/internal/application/note"
	"github.com/taskverse/taskverse/internal/application/schedule"
	"github.com/taskverse/taskverse/internal/application/task"
	"github.com/taskverse/taskverse/internal/application/template"
	"github.com/taskverse/taskverse/internal/application/workspace"
	"github.com/taskverse/taskverse/internal/auth"
	"github.com/taskverse/taskverse/internal/domain"
)

// TagSuggester asks a model for tags matching a task description.
type TagSuggester interface {
	SuggestTags(ctx context.Context, taskDescription string) ([]string, error)
}

// API holds the application services behind the HTTP surface.
type API struct {
	tasks      *task.Service
	workspaces *workspace.Service
	notes      *note.Service
	schedules  *schedule.Service
	templates  *template.Service
	exports    *export.Service
	tagger     TagSuggester
}

// NewAPI creates the HTTP API handler.
func NewAPI(
	tasks *task.Service,
	workspaces *workspace.Service,
	notes *note.Service,
	schedules *schedule.Service,
	templates *template.Service,
	exports *export.Service,
	tagger TagSuggester,
) *API {
	return &API{
		tasks:      tasks,
		workspaces: workspaces,
		notes:      notes,
		schedules:  schedules,
		templates:  templates,
		exports:    exports,
		tagger:     tagger,
	}
}

// Routes builds the router for everything under /v1.
func (h *API) Routes() chi.Router {
	r := chi.NewRouter()

	h.mountTaskRoutes(r, h.personalScope)
	r.Get("/stats", h.stats(h.personalScope))
	r.Get("/stats/risk", h.atRisk(h.personalScope))
	r.Get("/stats/focus", h.focus(h.personalScope))

	r.Post("/workspaces", h.createWorkspace)
	r.Get("/workspaces", h.listWorkspaces)
	r.Get("/workspaces/{workspaceID}/members", h.listMembers)
	r.Post("/workspaces/{workspaceID}/invitations", h.createInvitation)
	r.Get("/invitations", h.listInvitations)
	r.Post("/invitations/{invitationID}:accept", h.acceptInvitation)
	r.Post("/invitations/{invitationID}:decline", h.declineInvitation)

	r.Route("/workspaces/{workspaceID}", func(r chi.Router) {
		h.mountTaskRoutes(r, h.workspaceScope)
		r.Get("/stats", h.stats(h.workspaceScope))
		r.Get("/stats/risk", h.atRisk(h.workspaceScope))
		r.Get("/stats/focus", h.focus(h.workspaceScope))
	})

	r.Get("/notes", h.listNotes)
	r.Post("/notes", h.createNote)
	r.Patch("/notes/{noteID}", h.updateNote)
	r.Delete("/notes/{noteID}", h.deleteNote)
	r.Delete("/notes", h.deleteAllNotes)

	r.Get("/schedules", h.listSchedules)
	r.Post("/schedules", h.createSchedule)
	r.Patch("/schedules/{scheduleID}", h.updateSchedule)
	r.Delete("/schedules/{scheduleID}", h.deleteSchedule)
	r.Delete("/schedules", h.deleteAllSchedules)

	r.Get("/templates", h.listTemplates)
	r.Post("/templates", h.createTemplate)
	r.Post("/templates/{templateID}:apply", h.applyTemplate)

	r.Post("/tags:suggest", h.suggestTags)

	r.Post("/export", h.createExport)
	r.Get("/export", h.listExports)

	return r
}

// scopeFunc resolves the task collection a request operates on.
type scopeFunc func(r *http.Request) (domain.Scope, error)

// personalScope is the caller's own task collection.
func (h *API) personalScope(r *http.Request) (domain.Scope, error) {
	identity, _ := auth.IdentityFromContext(r.Context())
	return domain.UserScope(identity.UserID), nil
}

// workspaceScope resolves the workspace from the URL and gates on membership.
func (h *API) workspaceScope(r *http.Request) (domain.Scope, error) {
	identity, _ := auth.IdentityFromContext(r.Context())
	workspaceID := chi.URLParam(r, "workspaceID")
	if err := h.workspaces.RequireMember(r.Context(), workspaceID, identity.UserID); err != nil {
		return domain.Scope{}, err
	}
	return domain.WorkspaceScope(workspaceID), nil
}

func (h *API) mountTaskRoutes(r chi.Router, scope scopeFunc) {
	r.Get("/tasks", h.listTasks(scope))
	r.Post("/tasks", h.createTask(scope))
	r.Post("/tasks:batch", h.createTaskBatch(scope))
	r.Post("/tasks:reorder", h.reorderTasks(scope))
	r.Patch("/tasks/{taskID}", h.updateTask(scope))
	r.Delete("/tasks/{taskID}", h.deleteTask(scope))
	r.Delete("/tasks", h.deleteAllTasks(scope))
}

func identityFrom(r *http.Request) auth.Identity {
	identity, _ := auth.IdentityFromContext(r.Context())
	return identity
}
