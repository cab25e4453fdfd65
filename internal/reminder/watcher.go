// Package reminder polls task collections and fires due-date notifications.
// Deduplication is in-memory per watcher instance: each (task, kind) pair
// notifies once and the set resets on restart, matching how the product's
// reminder toasts have always behaved per session.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskverse/taskverse/internal/clock"
	"github.com/taskverse/taskverse/internal/domain"
)

// DefaultInterval between reminder sweeps.
const DefaultInterval = 60 * time.Second

// KindOverdue marks a past-deadline notification; reminder offsets use
// their own wire values as kinds.
const KindOverdue = "overdue"

// Notification is one reminder event.
type Notification struct {
	TaskID  string
	Title   string
	Kind    string
	Message string
}

// Notifier delivers notifications. Delivery is best effort; the watcher
// never retries.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// TaskSource supplies the tasks to sweep.
type TaskSource interface {
	ListRemindableTasks(ctx context.Context) ([]domain.Task, error)
}

// Watcher sweeps tasks on a fixed interval.
type Watcher struct {
	source   TaskSource
	notifier Notifier
	clock    clock.Clock
	interval time.Duration

	notified map[string]struct{}
}

// NewWatcher creates a watcher. A nil clk falls back to the system clock; a
// non-positive interval falls back to DefaultInterval.
func NewWatcher(source TaskSource, notifier Notifier, clk clock.Clock, interval time.Duration) *Watcher {
	if clk == nil {
		clk = clock.System{}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		source:   source,
		notifier: notifier,
		clock:    clk,
		interval: interval,
		notified: make(map[string]struct{}),
	}
}

// Run sweeps immediately, then on every tick until the context is
// cancelled. Sweep errors are logged and the loop keeps going.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.CheckOnce(ctx); err != nil {
		slog.ErrorContext(ctx, "reminder sweep failed", "error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.CheckOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "reminder sweep failed", "error", err)
			}
		}
	}
}

// CheckOnce runs a single sweep.
func (w *Watcher) CheckOnce(ctx context.Context) error {
	tasks, err := w.source.ListRemindableTasks(ctx)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	now := w.clock.Now()
	for _, task := range tasks {
		if task.IsCompleted() || task.DueDate.IsZero() {
			continue
		}
		w.checkOverdue(ctx, task, now)
		for _, offset := range task.Reminders {
			w.checkReminder(ctx, task, offset, now)
		}
	}
	return nil
}

func (w *Watcher) checkOverdue(ctx context.Context, task domain.Task, now time.Time) {
	if !task.DueDate.Before(now) || sameCalendarDay(task.DueDate, now) {
		return
	}
	w.fire(ctx, Notification{
		TaskID:  task.ID,
		Title:   task.Title,
		Kind:    KindOverdue,
		Message: fmt.Sprintf("Task %q is past its deadline.", task.Title),
	})
}

func (w *Watcher) checkReminder(ctx context.Context, task domain.Task, offset domain.ReminderOffset, now time.Time) {
	hoursUntil := int(task.DueDate.Sub(now).Hours())
	daysUntil := int(task.DueDate.Sub(now).Hours() / 24)

	var message string
	switch offset {
	case domain.ReminderOneHourBefore:
		if hoursUntil < 0 || hoursUntil >= 1 {
			return
		}
		message = fmt.Sprintf("Task %q is due within the hour.", task.Title)
	case domain.ReminderOneDayBefore:
		if daysUntil < 0 || daysUntil >= 1 {
			return
		}
		message = fmt.Sprintf("Task %q is due tomorrow.", task.Title)
	case domain.ReminderThreeDaysBefore:
		if daysUntil < 0 || daysUntil >= 3 {
			return
		}
		message = fmt.Sprintf("Task %q is due within three days.", task.Title)
	default:
		return
	}

	w.fire(ctx, Notification{
		TaskID:  task.ID,
		Title:   task.Title,
		Kind:    string(offset),
		Message: message,
	})
}

// fire delivers once per (task, kind).
func (w *Watcher) fire(ctx context.Context, n Notification) {
	key := n.TaskID + "-" + n.Kind
	if _, done := w.notified[key]; done {
		return
	}
	w.notified[key] = struct{}{}
	w.notifier.Notify(ctx, n)
}

func sameCalendarDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// LogNotifier writes notifications to the structured log. The worker binary
// uses it as the delivery channel.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, n Notification) {
	slog.InfoContext(ctx, "task reminder",
		"task_id", n.TaskID,
		"kind", n.Kind,
		"message", n.Message,
	)
}
