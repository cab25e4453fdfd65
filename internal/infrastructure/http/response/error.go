package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskverse/taskverse/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []ErrorField `json:"details,omitempty"`
}

// ErrorField describes a field-specific error.
type ErrorField struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// BadRequest sends a 400 Bad Request error.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, "INVALID_REQUEST", message, http.StatusBadRequest)
}

// ValidationError sends a 400 validation error with field details.
func ValidationError(w http.ResponseWriter, field, issue string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed",
			Details: []ErrorField{
				{Field: field, Issue: issue},
			},
		},
	})
}

// NotFound sends a 404 Not Found error.
func NotFound(w http.ResponseWriter, resource string) {
	Error(w, "NOT_FOUND", resource+" not found", http.StatusNotFound)
}

// Unauthorized sends a 401 Unauthorized error.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, "UNAUTHORIZED", message, http.StatusUnauthorized)
}

// Forbidden sends a 403 Forbidden error.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, "FORBIDDEN", message, http.StatusForbidden)
}

// Conflict sends a 409 Conflict error.
func Conflict(w http.ResponseWriter, message string) {
	Error(w, "CONFLICT", message, http.StatusConflict)
}

// BadGateway sends a 502 Bad Gateway error for upstream failures.
func BadGateway(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "upstream service error", "error", err)
	}
	Error(w, "UPSTREAM_ERROR", "upstream service failed", http.StatusBadGateway)
}

// InternalError sends a 500 Internal Server Error. The actual error is logged
// server-side; the client gets a generic message.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "internal server error", "error", err)
	}
	Error(w, "INTERNAL_ERROR", "an internal error occurred", http.StatusInternalServerError)
}

// Error sends a generic error response.
func Error(w http.ResponseWriter, code, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// FromDomainError maps domain errors to HTTP responses.
func FromDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	// Validation errors (400)
	case errors.Is(err, domain.ErrInvalidTitle):
		ValidationError(w, "title", "must be between 1 and 255 characters")
	case errors.Is(err, domain.ErrInvalidTaskStatus):
		ValidationError(w, "status", "invalid task status")
	case errors.Is(err, domain.ErrInvalidTaskPriority):
		ValidationError(w, "priority", "invalid priority level")
	case errors.Is(err, domain.ErrInvalidReminderOffset):
		ValidationError(w, "reminders", "invalid reminder offset")
	case errors.Is(err, domain.ErrInvalidTimestamp):
		ValidationError(w, "dueDate", "invalid timestamp")
	case errors.Is(err, domain.ErrInvalidDayOfWeek):
		ValidationError(w, "dayOfWeek", "invalid day of week")
	case errors.Is(err, domain.ErrEmptyNoteContent):
		ValidationError(w, "content", "must not be empty")
	case errors.Is(err, domain.ErrEmptyBatch):
		BadRequest(w, "batch contains no entries")

	// Not found errors (404)
	case errors.Is(err, domain.ErrTaskNotFound):
		NotFound(w, "task")
	case errors.Is(err, domain.ErrNoteNotFound):
		NotFound(w, "note")
	case errors.Is(err, domain.ErrScheduleNotFound):
		NotFound(w, "schedule")
	case errors.Is(err, domain.ErrTemplateNotFound):
		NotFound(w, "template")
	case errors.Is(err, domain.ErrWorkspaceNotFound):
		NotFound(w, "workspace")
	case errors.Is(err, domain.ErrInvitationNotFound):
		NotFound(w, "invitation")

	// Access errors (403)
	case errors.Is(err, domain.ErrNotWorkspaceMember):
		Forbidden(w, "caller is not a workspace member")
	case errors.Is(err, domain.ErrInvitationForbidden):
		Forbidden(w, "invitation is addressed to a different user")

	// Conflicts (409)
	case errors.Is(err, domain.ErrAlreadyMember):
		Conflict(w, "user is already a workspace member")
	case errors.Is(err, domain.ErrInvitationNotOpen):
		Conflict(w, "invitation is no longer pending")

	// Unknown errors (500)
	default:
		InternalError(w, r, err)
	}
}
