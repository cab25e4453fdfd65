package analytics

import (
	"math"
	"time"

	"github.com/taskverse/taskverse/internal/domain"
)

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Aggregate computes the dashboard statistics snapshot for a task collection
// at the given instant. Calendar arithmetic (today, weekday buckets, week
// boundaries) uses now's location; weeks are ISO weeks starting Monday.
func Aggregate(tasks []domain.Task, now time.Time) domain.TaskStats {
	stats := domain.TaskStats{
		Total:               len(tasks),
		MostProductiveDay:   "N/A",
		TasksCompletedByDay: make([]domain.DailyTaskStats, 7),
	}

	thisWeekStart := startOfISOWeek(now)
	lastWeekStart := thisWeekStart.AddDate(0, 0, -7)
	nextWeekStart := thisWeekStart.AddDate(0, 0, 7)

	var (
		completedTotal int
		byWeekday      [7]int
		completionSum  int
		completionN    int
	)

	for _, task := range tasks {
		if task.IsCompleted() {
			// A Completed status without a completion time is an inconsistent
			// record; it contributes to Total only.
			if task.CompletedAt != nil {
				completedTotal++
				completedAt := task.CompletedAt.In(now.Location())
				if sameCalendarDay(completedAt, now) {
					stats.CompletedToday++
				}
				if !completedAt.Before(thisWeekStart) && completedAt.Before(nextWeekStart) {
					stats.CompletedThisWeek++
				}
				if !completedAt.Before(lastWeekStart) && completedAt.Before(thisWeekStart) {
					stats.CompletedLastWeek++
				}
				byWeekday[int(completedAt.Weekday())]++

				if !task.CreatedAt.IsZero() {
					if days := wholeDays(completedAt.Sub(task.CreatedAt)); days >= 0 {
						completionSum += days
						completionN++
					}
				}
			}
			continue
		}

		switch {
		case task.DueDate.IsZero():
			// No deadline, neither overdue nor upcoming.
		case task.DueDate.Before(now) && !sameCalendarDay(task.DueDate, now):
			stats.Overdue++
		case task.DueDate.After(now) && !sameCalendarDay(task.DueDate, now):
			stats.Upcoming++
		}

		switch task.Priority {
		case domain.TaskPriorityHigh:
			stats.PriorityCounts.High++
		case domain.TaskPriorityMedium:
			stats.PriorityCounts.Medium++
		case domain.TaskPriorityLow:
			stats.PriorityCounts.Low++
		}
	}

	if stats.CompletedLastWeek > 0 {
		delta := float64(stats.CompletedThisWeek-stats.CompletedLastWeek) / float64(stats.CompletedLastWeek)
		stats.WoWTrend = int(math.Round(delta * 100))
	} else if stats.CompletedThisWeek > 0 {
		stats.WoWTrend = 100
	}

	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(completedTotal) / float64(stats.Total) * 100))
	}
	if completionN > 0 {
		stats.AvgCompletionTimeDays = int(math.Round(float64(completionSum) / float64(completionN)))
	}

	for i := range weekdayNames {
		stats.TasksCompletedByDay[i] = domain.DailyTaskStats{Day: weekdayNames[i], Tasks: byWeekday[i]}
	}

	if stats.Total > 0 {
		best := 0
		for i := 1; i < len(byWeekday); i++ {
			if byWeekday[i] > byWeekday[best] {
				best = i
			}
		}
		stats.MostProductiveDay = weekdayNames[best]
	}

	return stats
}
