package domain

// DailyTaskStats is one histogram bucket of tasks completed per weekday.
type DailyTaskStats struct {
	Day   string
	Tasks int
}

// PriorityCounts breaks down incomplete tasks by priority.
type PriorityCounts struct {
	High   int
	Medium int
	Low    int
}

// TaskStats is the aggregated dashboard snapshot for one task collection.
// All percentage fields are rounded to the nearest integer.
type TaskStats struct {
	Total                 int
	CompletedToday        int
	Overdue               int
	Upcoming              int
	CompletedThisWeek     int
	CompletedLastWeek     int
	WoWTrend              int
	CompletionRate        int
	AvgCompletionTimeDays int
	MostProductiveDay     string
	TasksCompletedByDay   []DailyTaskStats
	PriorityCounts        PriorityCounts
}

// RiskLevel is the banded urgency tier of a scored task.
type RiskLevel string

const (
	RiskLevelHigh   RiskLevel = "High"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelLow    RiskLevel = "Low"
)

// TaskWithRisk pairs a task with its computed deadline risk.
type TaskWithRisk struct {
	Task
	RiskScore int
	RiskLevel RiskLevel
}
