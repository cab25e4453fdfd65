// Package search compiles free-text queries into task predicates.
//
// Query grammar: the query is lowercased and split on whitespace. Terms
// starting with '#' add tag filters (all must match, case-insensitive).
// "priority:<value>" matches the priority exactly, "due:today" matches tasks
// due on the current calendar day, and "overdue:true" matches tasks past due,
// not due today and not completed. Every other term, including terms with an
// unrecognized "prefix:" shape, is folded into a single space-joined
// substring match against the title or description.
package search

import (
	"strings"
	"time"

	"github.com/taskverse/taskverse/internal/domain"
)

// Predicate is a compiled query. The zero value matches every task.
type Predicate struct {
	Text     string
	Tags     []string
	Priority string
	DueToday bool
	Overdue  bool
}

// IsEmpty reports whether the predicate has no active clauses.
func (p Predicate) IsEmpty() bool {
	return p.Text == "" && len(p.Tags) == 0 && p.Priority == "" && !p.DueToday && !p.Overdue
}

// Compile parses a raw query into a Predicate. Compilation is total: no
// input is rejected.
func Compile(query string) Predicate {
	var pred Predicate
	var textTerms []string

	for _, term := range strings.Fields(strings.ToLower(query)) {
		switch {
		case strings.HasPrefix(term, "#"):
			pred.Tags = append(pred.Tags, term[1:])
		case strings.HasPrefix(term, "priority:"):
			if pred.Priority == "" {
				pred.Priority = strings.TrimPrefix(term, "priority:")
			}
		case strings.HasPrefix(term, "due:"):
			if strings.TrimPrefix(term, "due:") == "today" {
				pred.DueToday = true
			}
		case strings.HasPrefix(term, "overdue:"):
			if strings.TrimPrefix(term, "overdue:") == "true" {
				pred.Overdue = true
			}
		default:
			textTerms = append(textTerms, term)
		}
	}

	pred.Text = strings.Join(textTerms, " ")
	return pred
}

// Matches reports whether a task satisfies every active clause at the given
// instant.
func (p Predicate) Matches(task domain.Task, now time.Time) bool {
	if p.Text != "" {
		title := strings.ToLower(task.Title)
		description := strings.ToLower(task.Description)
		if !strings.Contains(title, p.Text) && !strings.Contains(description, p.Text) {
			return false
		}
	}

	if len(p.Tags) > 0 {
		taskTags := make(map[string]struct{}, len(task.Tags))
		for _, tag := range task.Tags {
			taskTags[strings.ToLower(tag)] = struct{}{}
		}
		for _, want := range p.Tags {
			if _, ok := taskTags[want]; !ok {
				return false
			}
		}
	}

	if p.Priority != "" && strings.ToLower(string(task.Priority)) != p.Priority {
		return false
	}

	if p.DueToday && !sameCalendarDay(task.DueDate, now) {
		return false
	}

	if p.Overdue {
		if !task.DueDate.Before(now) || sameCalendarDay(task.DueDate, now) || task.IsCompleted() {
			return false
		}
	}

	return true
}

// Apply filters tasks by the predicate, preserving input order. An empty
// predicate returns the input unchanged.
func Apply(tasks []domain.Task, pred Predicate, now time.Time) []domain.Task {
	if pred.IsEmpty() {
		return tasks
	}
	matched := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if pred.Matches(task, now) {
			matched = append(matched, task)
		}
	}
	return matched
}

func sameCalendarDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
