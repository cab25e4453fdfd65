package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskverse/taskverse/internal/domain"
)

var now = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

func TestCompile(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Predicate
	}{
		{
			name:  "empty query",
			query: "   ",
			want:  Predicate{},
		},
		{
			name:  "mixed clauses",
			query: "design #ui priority:high",
			want:  Predicate{Text: "design", Tags: []string{"ui"}, Priority: "high"},
		},
		{
			name:  "uppercase folded",
			query: "Design #UI Priority:HIGH",
			want:  Predicate{Text: "design", Tags: []string{"ui"}, Priority: "high"},
		},
		{
			name:  "due today and overdue flags",
			query: "due:today overdue:true",
			want:  Predicate{DueToday: true, Overdue: true},
		},
		{
			name:  "unrecognized values ignored",
			query: "due:tomorrow overdue:false",
			want:  Predicate{},
		},
		{
			name:  "unknown prefix folds into text",
			query: "status:done report",
			want:  Predicate{Text: "status:done report"},
		},
		{
			name:  "first priority wins",
			query: "priority:high priority:low",
			want:  Predicate{Priority: "high"},
		},
		{
			name:  "multiple tags",
			query: "#ui #design",
			want:  Predicate{Tags: []string{"ui", "design"}},
		},
		{
			name:  "text terms rejoin with single spaces",
			query: "  quarterly   board   report  ",
			want:  Predicate{Text: "quarterly board report"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compile(tt.query))
		})
	}
}

func TestMatches(t *testing.T) {
	base := domain.Task{
		Title:       "Design the landing page",
		Description: "Hero section and pricing table",
		Priority:    domain.TaskPriorityHigh,
		Status:      domain.TaskStatusPending,
		Tags:        []string{"UI", "marketing"},
		DueDate:     now.Add(2 * time.Hour),
	}

	tests := []struct {
		name  string
		query string
		task  domain.Task
		want  bool
	}{
		{name: "text matches title", query: "landing", task: base, want: true},
		{name: "text matches description", query: "pricing", task: base, want: true},
		{name: "text miss", query: "invoices", task: base, want: false},
		{name: "tag match is case-insensitive", query: "#ui", task: base, want: true},
		{name: "all tags must match", query: "#ui #backend", task: base, want: false},
		{name: "priority equality", query: "priority:high", task: base, want: true},
		{name: "priority mismatch", query: "priority:low", task: base, want: false},
		{name: "due today", query: "due:today", task: base, want: true},
		{name: "clauses combine with and", query: "landing #ui priority:high", task: base, want: true},
		{name: "one failing clause rejects", query: "landing #ui priority:low", task: base, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := Compile(tt.query)
			assert.Equal(t, tt.want, pred.Matches(tt.task, now))
		})
	}
}

func TestMatchesOverdue(t *testing.T) {
	pred := Compile("overdue:true")

	pastDue := domain.Task{Status: domain.TaskStatusPending, DueDate: now.AddDate(0, 0, -2)}
	assert.True(t, pred.Matches(pastDue, now))

	dueEarlierToday := domain.Task{Status: domain.TaskStatusPending, DueDate: now.Add(-2 * time.Hour)}
	assert.False(t, pred.Matches(dueEarlierToday, now), "due today is not overdue")

	completedPastDue := domain.Task{Status: domain.TaskStatusCompleted, DueDate: now.AddDate(0, 0, -2)}
	assert.False(t, pred.Matches(completedPastDue, now))
}

func TestApply(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Title: "Write report", Status: domain.TaskStatusPending},
		{ID: "b", Title: "Report bug", Status: domain.TaskStatusPending},
		{ID: "c", Title: "Plan offsite", Status: domain.TaskStatusPending},
	}

	t.Run("empty predicate returns input unchanged", func(t *testing.T) {
		got := Apply(tasks, Compile(""), now)
		assert.Equal(t, tasks, got)
	})

	t.Run("filters preserving order", func(t *testing.T) {
		got := Apply(tasks, Compile("report"), now)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "b", got[1].ID)
	})
}
