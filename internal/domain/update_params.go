package domain

import "time"

// UpdateTaskParams carries a partial task update. Nil pointer fields are left
// unchanged. CompletedAt handling is owned by the service: it sets the field
// on a transition into Completed and requests a clear on a transition away.
type UpdateTaskParams struct {
	TaskID string

	Title       *Title
	Description *string
	DueDate     *time.Time
	Priority    *TaskPriority
	Status      *TaskStatus
	Tags        *[]string
	Subtasks    *[]Subtask
	Reminders   *[]ReminderOffset
	OrderRank   *int

	CompletedAt      *time.Time
	ClearCompletedAt bool
}

// TaskWrite is one entry of an atomic batch update, used by the reorder
// engine to rewrite ranks and priorities in a single transaction.
type TaskWrite struct {
	TaskID    string
	OrderRank int
	Priority  TaskPriority
}

// UpdateNoteParams carries a partial note update.
type UpdateNoteParams struct {
	NoteID  string
	Content *string
}

// UpdateScheduleParams carries a partial schedule update.
type UpdateScheduleParams struct {
	ScheduleID string

	CourseName *string
	Session    *string
	DayOfWeek  *DayOfWeek
	TimeStart  *string
	TimeEnd    *string
	Location   *string
	Lecturer   *string
}
