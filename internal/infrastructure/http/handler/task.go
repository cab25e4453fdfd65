package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskverse/taskverse/internal/application/task"
	"github.com/taskverse/taskverse/internal/domain"
	"github.com/taskverse/taskverse/internal/infrastructure/http/response"
)

// createTaskRequest is the body for task creation, inside and outside
// batches.
type createTaskRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	DueDate     domain.Timestamp `json:"dueDate"`
	Priority    string           `json:"priority"`
	Tags        []string         `json:"tags"`
	Subtasks    []subtaskDTO     `json:"subtasks"`
	Reminders   []string         `json:"reminders"`
}

func (req *createTaskRequest) toParams() (task.CreateParams, error) {
	params := task.CreateParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate.Time,
		Priority:    domain.TaskPriority(req.Priority),
		Tags:        req.Tags,
	}
	for _, st := range req.Subtasks {
		params.Subtasks = append(params.Subtasks, domain.Subtask{ID: st.ID, Text: st.Text, Completed: st.Completed})
	}
	for _, raw := range req.Reminders {
		offset, err := domain.NewReminderOffset(raw)
		if err != nil {
			return task.CreateParams{}, err
		}
		params.Reminders = append(params.Reminders, offset)
	}
	return params, nil
}

// updateTaskRequest is the body for a partial task update. Absent fields are
// left unchanged.
type updateTaskRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	DueDate     *domain.Timestamp `json:"dueDate"`
	Priority    *string           `json:"priority"`
	Status      *string           `json:"status"`
	Tags        *[]string         `json:"tags"`
	Subtasks    *[]subtaskDTO     `json:"subtasks"`
	Reminders   *[]string         `json:"reminders"`
	OrderRank   *int              `json:"orderRank"`
}

// GET /v1/tasks?q=
func (h *API) listTasks(scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := scope(r)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}

		tasks, err := h.tasks.List(r.Context(), sc, r.URL.Query().Get("q"))
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		response.OK(w, map[string]any{"tasks": mapTasksToDTO(tasks)})
	}
}

// POST /v1/tasks
func (h *API) createTask(scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := scope(r)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}

		var req createTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}
		params, err := req.toParams()
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}

		created, err := h.tasks.Create(r.Context(), sc, params)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}

		slog.InfoContext(r.Context(), "task created",
			"task_id", created.ID,
			"scope_kind", sc.Kind)
		response.Created(w, map[string]any{"task": mapTaskToDTO(created)})
	}
}

// POST /v1/tasks:batch
func (h *API) createTaskBatch(scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := scope(r)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}

		var req struct {
			Tasks []createTaskRequest `json:"tasks"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		batch := make([]task.CreateParams, 0, len(req.Tasks))
		for _, tr := range req.Tasks {
			params, err := tr.toParams()
			if err != nil {
				response.FromDomainError(w, r, err)
				return
			}
			batch = append(batch, params)
		}

		created, err := h.tasks.CreateBatch(r.Context(), sc, batch)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}

		slog.InfoContext(r.Context(), "task batch created",
			"count", len(created),
			"scope_kind", sc.Kind)
		response.Created(w, map[string]any{"tasks": mapTasksToDTO(created)})
	}
}

// POST /v1/tasks:reorder
func (h *API) reorderTasks(scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := scope(r)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}

		var req struct {
			TaskIDs []string `json:"taskIds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		if err := h.tasks.Reorder(r.Context(), sc, req.TaskIDs); err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		response.NoContent(w)
	}
}

// PATCH /v1/tasks/{taskID}
func (h *API) updateTask(scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := scope(r)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}

		var req updateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		params := domain.UpdateTaskParams{TaskID: chi.URLParam(r, "taskID")}
		if req.Title != nil {
			title, err := domain.NewTitle(*req.Title)
			if err != nil {
				response.FromDomainError(w, r, err)
				return
			}
			params.Title = &title
		}
		params.Description = req.Description
		if req.DueDate != nil {
			params.DueDate = &req.DueDate.Time
		}
		if req.Priority != nil {
			priority, err := domain.NewTaskPriority(*req.Priority)
			if err != nil {
				response.FromDomainError(w, r, err)
				return
			}
			params.Priority = &priority
		}
		if req.Status != nil {
			status, err := domain.NewTaskStatus(*req.Status)
			if err != nil {
				response.FromDomainError(w, r, err)
				return
			}
			params.Status = &status
		}
		params.Tags = req.Tags
		if req.Subtasks != nil {
			subtasks := make([]domain.Subtask, len(*req.Subtasks))
			for i, st := range *req.Subtasks {
				subtasks[i] = domain.Subtask{ID: st.ID, Text: st.Text, Completed: st.Completed}
			}
			params.Subtasks = &subtasks
		}
		if req.Reminders != nil {
			reminders := make([]domain.ReminderOffset, 0, len(*req.Reminders))
			for _, raw := range *req.Reminders {
				offset, err := domain.NewReminderOffset(raw)
				if err != nil {
					response.FromDomainError(w, r, err)
					return
				}
				reminders = append(reminders, offset)
			}
			params.Reminders = &reminders
		}
		params.OrderRank = req.OrderRank

		updated, err := h.tasks.Update(r.Context(), sc, params)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		response.OK(w, map[string]any{"task": mapTaskToDTO(updated)})
	}
}

// DELETE /v1/tasks/{taskID}
func (h *API) deleteTask(scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := scope(r)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}

		if err := h.tasks.Delete(r.Context(), sc, chi.URLParam(r, "taskID")); err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		response.NoContent(w)
	}
}

// DELETE /v1/tasks
func (h *API) deleteAllTasks(scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := scope(r)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}

		deleted, err := h.tasks.DeleteAll(r.Context(), sc)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}

		slog.InfoContext(r.Context(), "all tasks deleted",
			"count", deleted,
			"scope_kind", sc.Kind)
		response.OK(w, map[string]any{"deleted": deleted})
	}
}

// GET /v1/stats
func (h *API) stats(scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := scope(r)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}

		stats, err := h.tasks.Stats(r.Context(), sc)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		response.OK(w, mapStatsToDTO(stats))
	}
}

// GET /v1/stats/risk
func (h *API) atRisk(scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := scope(r)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}

		ranked, err := h.tasks.AtRisk(r.Context(), sc)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		response.OK(w, map[string]any{"tasks": mapRiskTasksToDTO(ranked)})
	}
}

// GET /v1/stats/focus
func (h *API) focus(scope scopeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := scope(r)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}

		tasks, err := h.tasks.Focus(r.Context(), sc)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		response.OK(w, map[string]any{"tasks": mapTasksToDTO(tasks)})
	}
}
