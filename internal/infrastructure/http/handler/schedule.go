package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskverse/taskverse/internal/application/schedule"
	"github.com/taskverse/taskverse/internal/domain"
	"github.com/taskverse/taskverse/internal/infrastructure/http/response"
)

type scheduleRequest struct {
	CourseName *string `json:"courseName"`
	Session    *string `json:"session"`
	DayOfWeek  *string `json:"dayOfWeek"`
	TimeStart  *string `json:"timeStart"`
	TimeEnd    *string `json:"timeEnd"`
	Location   *string `json:"location"`
	Lecturer   *string `json:"lecturer"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GET /v1/schedules
func (h *API) listSchedules(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	entries, err := h.schedules.List(r.Context(), identity.UserID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]scheduleDTO, len(entries))
	for i := range entries {
		dtos[i] = mapScheduleToDTO(&entries[i])
	}
	response.OK(w, map[string]any{"schedules": dtos})
}

// POST /v1/schedules
func (h *API) createSchedule(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	created, err := h.schedules.Add(r.Context(), identity.UserID, schedule.CreateParams{
		CourseName: deref(req.CourseName),
		Session:    deref(req.Session),
		DayOfWeek:  deref(req.DayOfWeek),
		TimeStart:  deref(req.TimeStart),
		TimeEnd:    deref(req.TimeEnd),
		Location:   deref(req.Location),
		Lecturer:   deref(req.Lecturer),
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.Created(w, map[string]any{"schedule": mapScheduleToDTO(created)})
}

// PATCH /v1/schedules/{scheduleID}
func (h *API) updateSchedule(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	params := domain.UpdateScheduleParams{
		ScheduleID: chi.URLParam(r, "scheduleID"),
		CourseName: req.CourseName,
		Session:    req.Session,
		TimeStart:  req.TimeStart,
		TimeEnd:    req.TimeEnd,
		Location:   req.Location,
		Lecturer:   req.Lecturer,
	}
	if req.DayOfWeek != nil {
		day, err := domain.NewDayOfWeek(*req.DayOfWeek)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		params.DayOfWeek = &day
	}

	updated, err := h.schedules.Update(r.Context(), identity.UserID, params)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, map[string]any{"schedule": mapScheduleToDTO(updated)})
}

// DELETE /v1/schedules/{scheduleID}
func (h *API) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	if err := h.schedules.Delete(r.Context(), identity.UserID, chi.URLParam(r, "scheduleID")); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.NoContent(w)
}

// DELETE /v1/schedules
func (h *API) deleteAllSchedules(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	deleted, err := h.schedules.DeleteAll(r.Context(), identity.UserID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, map[string]any{"deleted": deleted})
}
