package domain

import "time"

// TemplateTask is a task blueprint within a template. DueInDays is an offset
// from the application time; applying the template materializes the due date.
type TemplateTask struct {
	Title       string
	Description string
	Priority    TaskPriority
	Tags        []string
	DueInDays   int
}

// Template is a reusable set of task blueprints. Built-in templates ship with
// the service; user templates start unpublished and only published ones are
// visible to other users.
type Template struct {
	ID          string
	Title       string
	Description string
	Category    string
	AuthorID    string
	AuthorName  string
	Published   bool
	Tasks       []TemplateTask
	CreatedAt   time.Time
}
