package domain

import (
	"sort"
	"time"
)

// TaskStatus is the lifecycle state of a task.
// Wire values match what the web client displays, including the space
// in "In Progress".
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// TaskPriority is the user-facing priority of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// Rank returns the sort rank of a priority (High sorts first).
// Unknown priorities sort last.
func (p TaskPriority) Rank() int {
	switch p {
	case TaskPriorityHigh:
		return 1
	case TaskPriorityMedium:
		return 2
	case TaskPriorityLow:
		return 3
	default:
		return 4
	}
}

// ReminderOffset identifies a scheduled reminder relative to the due date.
type ReminderOffset string

const (
	ReminderOneHourBefore   ReminderOffset = "1_hour_before"
	ReminderOneDayBefore    ReminderOffset = "1_day_before"
	ReminderThreeDaysBefore ReminderOffset = "3_days_before"
)

// Subtask is a checklist entry within a task.
type Subtask struct {
	ID        string
	Text      string
	Completed bool
}

// Task is the aggregate root for a unit of work.
//
// CompletedAt is present iff Status is Completed: the service layer sets it
// when a status update transitions into Completed and clears it when the
// status moves away from Completed.
//
// OrderRank defines manual ordering among incomplete tasks. Completed tasks
// always sort after incomplete ones regardless of rank. Ranks are not
// required to be contiguous; the reorder operation reassigns them from
// list positions.
type Task struct {
	ID          string
	Title       string
	Description string
	DueDate     time.Time
	CreatedAt   time.Time
	CompletedAt *time.Time
	Priority    TaskPriority
	Status      TaskStatus
	Tags        []string
	Subtasks    []Subtask
	Reminders   []ReminderOffset
	OrderRank   int
}

// IsCompleted reports whether the task has Completed status.
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// SortForDisplay orders tasks the way every view consumes them:
// incomplete before completed, then ascending OrderRank within each group.
// The sort is stable so equal ranks keep their stored order.
func SortForDisplay(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsCompleted() != sorted[j].IsCompleted() {
			return !sorted[i].IsCompleted()
		}
		return sorted[i].OrderRank < sorted[j].OrderRank
	})
	return sorted
}

// MaxOrderRank returns the highest OrderRank in the collection, or 0 when
// the collection is empty or all ranks are negative. New tasks are created
// with MaxOrderRank+1.
func MaxOrderRank(tasks []Task) int {
	maxRank := 0
	for _, t := range tasks {
		if t.OrderRank > maxRank {
			maxRank = t.OrderRank
		}
	}
	return maxRank
}
