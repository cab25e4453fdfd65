package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskverse/taskverse/internal/domain"
)

func TestSelectFocusFiltersToToday(t *testing.T) {
	tasks := []domain.Task{
		{ID: "today", Status: domain.TaskStatusPending, DueDate: now.Add(4 * time.Hour), Priority: domain.TaskPriorityLow},
		{ID: "tomorrow", Status: domain.TaskStatusPending, DueDate: now.AddDate(0, 0, 1), Priority: domain.TaskPriorityHigh},
		{ID: "yesterday", Status: domain.TaskStatusPending, DueDate: now.AddDate(0, 0, -1), Priority: domain.TaskPriorityHigh},
		{ID: "done-today", Status: domain.TaskStatusCompleted, DueDate: now, Priority: domain.TaskPriorityHigh},
	}

	focus := SelectFocus(tasks, now, DefaultFocusLimit)

	require.Len(t, focus, 1)
	assert.Equal(t, "today", focus[0].ID)
}

func TestSelectFocusPriorityOrderAndStability(t *testing.T) {
	dueToday := now.Add(time.Hour)
	tasks := []domain.Task{
		{ID: "low", Status: domain.TaskStatusPending, DueDate: dueToday, Priority: domain.TaskPriorityLow},
		{ID: "med-1", Status: domain.TaskStatusInProgress, DueDate: dueToday, Priority: domain.TaskPriorityMedium},
		{ID: "high", Status: domain.TaskStatusPending, DueDate: dueToday, Priority: domain.TaskPriorityHigh},
		{ID: "med-2", Status: domain.TaskStatusPending, DueDate: dueToday, Priority: domain.TaskPriorityMedium},
	}

	focus := SelectFocus(tasks, now, 10)

	require.Len(t, focus, 4)
	assert.Equal(t, "high", focus[0].ID)
	assert.Equal(t, "med-1", focus[1].ID)
	assert.Equal(t, "med-2", focus[2].ID)
	assert.Equal(t, "low", focus[3].ID)
}

func TestSelectFocusTruncatesToLimit(t *testing.T) {
	dueToday := now.Add(time.Hour)
	var tasks []domain.Task
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		tasks = append(tasks, domain.Task{
			ID: id, Status: domain.TaskStatusPending, DueDate: dueToday, Priority: domain.TaskPriorityMedium,
		})
	}

	focus := SelectFocus(tasks, now, DefaultFocusLimit)

	require.Len(t, focus, 3)
	assert.Equal(t, "a", focus[0].ID)
	assert.Equal(t, "c", focus[2].ID)
}
