// Package export snapshots a user's account data (tasks, notes, schedules)
// into a blob store as a single JSON document.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/taskverse/taskverse/internal/clock"
	"github.com/taskverse/taskverse/internal/domain"
)

// BlobStore is the storage backend for snapshots. Implemented by the
// filesystem store for development and the GCS store for production.
type BlobStore interface {
	// Put writes a blob, overwriting any previous object with the name.
	Put(ctx context.Context, name string, data []byte) error

	// List returns the names of blobs under the prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// TaskLister provides the tasks to snapshot.
type TaskLister interface {
	ListTasks(ctx context.Context, scope domain.Scope) ([]domain.Task, error)
}

// NoteLister provides the notes to snapshot.
type NoteLister interface {
	ListNotes(ctx context.Context, ownerID string) ([]domain.Note, error)
}

// ScheduleLister provides the schedules to snapshot.
type ScheduleLister interface {
	ListSchedules(ctx context.Context, ownerID string) ([]domain.Schedule, error)
}

// Snapshot is the exported document layout.
type Snapshot struct {
	UserID     string            `json:"userId"`
	ExportedAt time.Time         `json:"exportedAt"`
	Tasks      []domain.Task     `json:"tasks"`
	Notes      []domain.Note     `json:"notes"`
	Schedules  []domain.Schedule `json:"schedules"`
}

// Service assembles and stores account snapshots.
type Service struct {
	store     BlobStore
	tasks     TaskLister
	notes     NoteLister
	schedules ScheduleLister
	clock     clock.Clock
}

// NewService creates an export service. A nil clk falls back to the system
// clock.
func NewService(store BlobStore, tasks TaskLister, notes NoteLister, schedules ScheduleLister, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	return &Service{store: store, tasks: tasks, notes: notes, schedules: schedules, clock: clk}
}

// Snapshot exports the user's personal data and returns the stored object
// name.
func (s *Service) Snapshot(ctx context.Context, userID string) (string, error) {
	tasks, err := s.tasks.ListTasks(ctx, domain.UserScope(userID))
	if err != nil {
		return "", fmt.Errorf("snapshot tasks: %w", err)
	}
	notes, err := s.notes.ListNotes(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("snapshot notes: %w", err)
	}
	schedules, err := s.schedules.ListSchedules(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("snapshot schedules: %w", err)
	}

	now := s.clock.Now().UTC()
	doc := Snapshot{
		UserID:     userID,
		ExportedAt: now,
		Tasks:      tasks,
		Notes:      notes,
		Schedules:  schedules,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	name := fmt.Sprintf("%s%s.json", s.prefix(userID), now.Format("20060102T150405Z"))
	if err := s.store.Put(ctx, name, data); err != nil {
		return "", fmt.Errorf("store snapshot: %w", err)
	}
	return name, nil
}

// List returns the names of the user's stored snapshots.
func (s *Service) List(ctx context.Context, userID string) ([]string, error) {
	names, err := s.store.List(ctx, s.prefix(userID))
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return names, nil
}

func (s *Service) prefix(userID string) string {
	return fmt.Sprintf("exports/%s/", userID)
}
