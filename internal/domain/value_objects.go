package domain

import (
	"fmt"
	"strings"
)

const maxTitleLength = 255

// Title is a validated task or template title.
type Title string

// NewTitle validates and constructs a Title. Leading and trailing
// whitespace is trimmed before validation.
func NewTitle(raw string) (Title, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || len(trimmed) > maxTitleLength {
		return "", fmt.Errorf("%w: got %d characters", ErrInvalidTitle, len(trimmed))
	}
	return Title(trimmed), nil
}

func (t Title) String() string { return string(t) }

// NewTaskStatus parses a wire status value.
func NewTaskStatus(raw string) (TaskStatus, error) {
	switch TaskStatus(raw) {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return TaskStatus(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, raw)
	}
}

// NewTaskPriority parses a wire priority value.
func NewTaskPriority(raw string) (TaskPriority, error) {
	switch TaskPriority(raw) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return TaskPriority(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskPriority, raw)
	}
}

// NewReminderOffset parses a wire reminder offset value.
func NewReminderOffset(raw string) (ReminderOffset, error) {
	switch ReminderOffset(raw) {
	case ReminderOneHourBefore, ReminderOneDayBefore, ReminderThreeDaysBefore:
		return ReminderOffset(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidReminderOffset, raw)
	}
}

// DayOfWeek is a schedule weekday name ("Monday".."Sunday").
type DayOfWeek string

var validDays = map[string]struct{}{
	"Monday": {}, "Tuesday": {}, "Wednesday": {}, "Thursday": {},
	"Friday": {}, "Saturday": {}, "Sunday": {},
}

// NewDayOfWeek parses a weekday name.
func NewDayOfWeek(raw string) (DayOfWeek, error) {
	if _, ok := validDays[raw]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDayOfWeek, raw)
	}
	return DayOfWeek(raw), nil
}
