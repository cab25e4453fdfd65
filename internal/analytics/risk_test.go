package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskverse/taskverse/internal/domain"
)

func TestScoreTask(t *testing.T) {
	tests := []struct {
		name      string
		task      domain.Task
		wantScore int
		wantLevel domain.RiskLevel
	}{
		{
			name: "overdue pending high maxes out",
			task: domain.Task{
				DueDate:  now.AddDate(0, 0, -2),
				Status:   domain.TaskStatusPending,
				Priority: domain.TaskPriorityHigh,
			},
			wantScore: 100,
			wantLevel: domain.RiskLevelHigh,
		},
		{
			name: "due within a day counts as tightest band",
			task: domain.Task{
				DueDate:  now.Add(20 * time.Hour),
				Status:   domain.TaskStatusInProgress,
				Priority: domain.TaskPriorityLow,
			},
			wantScore: 50, // 40 + 10
			wantLevel: domain.RiskLevelMedium,
		},
		{
			name: "due in two days pending medium",
			task: domain.Task{
				DueDate:  now.AddDate(0, 0, 2),
				Status:   domain.TaskStatusPending,
				Priority: domain.TaskPriorityMedium,
			},
			wantScore: 70, // 25 + 30 + 15
			wantLevel: domain.RiskLevelHigh,
		},
		{
			name: "due in five days in progress low",
			task: domain.Task{
				DueDate:  now.AddDate(0, 0, 5),
				Status:   domain.TaskStatusInProgress,
				Priority: domain.TaskPriorityLow,
			},
			wantScore: 20, // 10 + 10
			wantLevel: domain.RiskLevelLow,
		},
		{
			name: "distant deadline in progress low",
			task: domain.Task{
				DueDate:  now.AddDate(0, 0, 10),
				Status:   domain.TaskStatusInProgress,
				Priority: domain.TaskPriorityLow,
			},
			wantScore: 10,
			wantLevel: domain.RiskLevelLow,
		},
		{
			name: "exactly at medium threshold",
			task: domain.Task{
				DueDate:  now.AddDate(0, 0, 4),
				Status:   domain.TaskStatusPending,
				Priority: domain.TaskPriorityLow,
			},
			wantScore: 40, // 10 + 30
			wantLevel: domain.RiskLevelMedium,
		},
		{
			name: "exactly at high threshold",
			task: domain.Task{
				DueDate:  now.AddDate(0, 0, 10),
				Status:   domain.TaskStatusPending,
				Priority: domain.TaskPriorityHigh,
			},
			wantScore: 60, // 30 + 30
			wantLevel: domain.RiskLevelHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, level := ScoreTask(tt.task, now)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantLevel, level)
		})
	}
}

func TestRankByRiskExcludesCompletedAndTruncates(t *testing.T) {
	overdue := func(id string) domain.Task {
		return domain.Task{
			ID:       id,
			DueDate:  now.AddDate(0, 0, -1),
			Status:   domain.TaskStatusPending,
			Priority: domain.TaskPriorityHigh,
		}
	}

	tasks := []domain.Task{
		{ID: "done", Status: domain.TaskStatusCompleted, DueDate: now.AddDate(0, 0, -3)},
		overdue("a"),
		{ID: "calm", Status: domain.TaskStatusInProgress, Priority: domain.TaskPriorityLow, DueDate: now.AddDate(0, 0, 30)},
		overdue("b"),
		overdue("c"),
	}

	ranked := RankByRisk(tasks, now, DefaultRiskLimit)

	require.Len(t, ranked, 3)
	// Equal scores keep input order, completed task never appears.
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "b", ranked[1].ID)
	assert.Equal(t, "c", ranked[2].ID)
	assert.Equal(t, domain.RiskLevelHigh, ranked[0].RiskLevel)
}

func TestRankByRiskOrdersByDescendingScore(t *testing.T) {
	tasks := []domain.Task{
		{ID: "low", Status: domain.TaskStatusInProgress, Priority: domain.TaskPriorityLow, DueDate: now.AddDate(0, 0, 30)},
		{ID: "high", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityHigh, DueDate: now.AddDate(0, 0, -1)},
		{ID: "mid", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityLow, DueDate: now.AddDate(0, 0, 4)},
	}

	ranked := RankByRisk(tasks, now, DefaultRiskLimit)

	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].ID)
	assert.Equal(t, "mid", ranked[1].ID)
	assert.Equal(t, "low", ranked[2].ID)
}
