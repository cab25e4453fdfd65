package analytics

import (
	"sort"
	"time"

	"github.com/taskverse/taskverse/internal/domain"
)

// Risk tier thresholds on the additive score.
const (
	riskHighThreshold   = 60
	riskMediumThreshold = 40
)

// DefaultRiskLimit is how many at-risk tasks the dashboard card shows.
const DefaultRiskLimit = 3

// ScoreTask computes the additive deadline-risk score and its tier for one
// task. Scores combine deadline proximity (whole days until due, truncated,
// so anything overdue or due within 24h lands in the tightest band), status
// and priority.
func ScoreTask(task domain.Task, now time.Time) (int, domain.RiskLevel) {
	score := 0

	switch days := wholeDays(task.DueDate.Sub(now)); {
	case days < 1:
		score += 40
	case days < 3:
		score += 25
	case days < 7:
		score += 10
	}

	switch task.Status {
	case domain.TaskStatusPending:
		score += 30
	case domain.TaskStatusInProgress:
		score += 10
	}

	switch task.Priority {
	case domain.TaskPriorityHigh:
		score += 30
	case domain.TaskPriorityMedium:
		score += 15
	}

	switch {
	case score >= riskHighThreshold:
		return score, domain.RiskLevelHigh
	case score >= riskMediumThreshold:
		return score, domain.RiskLevelMedium
	default:
		return score, domain.RiskLevelLow
	}
}

// RankByRisk scores every incomplete task and returns the top limit by
// descending score. The sort is stable so equal scores keep input order.
func RankByRisk(tasks []domain.Task, now time.Time, limit int) []domain.TaskWithRisk {
	scored := make([]domain.TaskWithRisk, 0, len(tasks))
	for _, task := range tasks {
		if task.IsCompleted() {
			continue
		}
		score, level := ScoreTask(task, now)
		scored = append(scored, domain.TaskWithRisk{Task: task, RiskScore: score, RiskLevel: level})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RiskScore > scored[j].RiskScore
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
