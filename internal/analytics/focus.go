package analytics

import (
	"sort"
	"time"

	"github.com/taskverse/taskverse/internal/domain"
)

// DefaultFocusLimit is how many tasks the daily focus card shows.
const DefaultFocusLimit = 3

// SelectFocus picks the incomplete tasks due on now's calendar day, ordered
// by priority (High first, stable within a priority), truncated to limit.
func SelectFocus(tasks []domain.Task, now time.Time, limit int) []domain.Task {
	focus := make([]domain.Task, 0, limit)
	for _, task := range tasks {
		if task.IsCompleted() || !sameCalendarDay(task.DueDate, now) {
			continue
		}
		focus = append(focus, task)
	}

	sort.SliceStable(focus, func(i, j int) bool {
		return focus[i].Priority.Rank() < focus[j].Priority.Rank()
	})

	if limit > 0 && len(focus) > limit {
		focus = focus[:limit]
	}
	return focus
}
