package schedule

import (
	"context"

	"github.com/taskverse/taskverse/internal/domain"
)

// Repository defines storage operations for weekly schedules.
type Repository interface {
	// CreateSchedule persists a schedule entry and returns it as stored.
	CreateSchedule(ctx context.Context, entry *domain.Schedule) (*domain.Schedule, error)

	// ListSchedules retrieves the owner's schedule entries.
	ListSchedules(ctx context.Context, ownerID string) ([]domain.Schedule, error)

	// UpdateSchedule applies a partial update.
	// Returns domain.ErrScheduleNotFound if the entry doesn't exist for the owner.
	UpdateSchedule(ctx context.Context, ownerID string, params domain.UpdateScheduleParams) (*domain.Schedule, error)

	// DeleteSchedule removes an entry.
	// Returns domain.ErrScheduleNotFound if it doesn't exist for the owner.
	DeleteSchedule(ctx context.Context, ownerID, id string) error

	// DeleteAllSchedules removes every entry the owner has and reports the
	// count.
	DeleteAllSchedules(ctx context.Context, ownerID string) (int64, error)
}
