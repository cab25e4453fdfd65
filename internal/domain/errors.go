package domain

import "errors"

// Sentinel errors for domain rule violations. Callers wrap these with %w and
// the HTTP layer maps them to status codes.
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrInvitationNotFound = errors.New("invitation not found")

	ErrInvalidTitle          = errors.New("title must be between 1 and 255 characters")
	ErrInvalidTaskStatus     = errors.New("invalid task status")
	ErrInvalidTaskPriority   = errors.New("invalid task priority")
	ErrInvalidReminderOffset = errors.New("invalid reminder offset")
	ErrInvalidTimestamp      = errors.New("invalid timestamp")
	ErrInvalidDayOfWeek      = errors.New("invalid day of week")

	ErrEmptyNoteContent = errors.New("note content must not be empty")

	ErrAlreadyMember       = errors.New("user is already a workspace member")
	ErrInvitationNotOpen   = errors.New("invitation is not pending")
	ErrInvitationForbidden = errors.New("invitation addressed to a different user")
	ErrNotWorkspaceMember  = errors.New("caller is not a workspace member")

	ErrEmptyBatch = errors.New("batch contains no entries")
)
