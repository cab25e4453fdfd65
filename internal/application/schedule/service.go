package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskverse/taskverse/internal/domain"
)

// CreateParams carries the fields for a new schedule entry.
type CreateParams struct {
	CourseName string
	Session    string
	DayOfWeek  string
	TimeStart  string
	TimeEnd    string
	Location   string
	Lecturer   string
}

// Service provides business logic for weekly schedule entries.
type Service struct {
	repo Repository
}

// NewService creates a schedule service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add creates a schedule entry for the owner.
func (s *Service) Add(ctx context.Context, ownerID string, params CreateParams) (*domain.Schedule, error) {
	courseName, err := domain.NewTitle(params.CourseName)
	if err != nil {
		return nil, err
	}
	day, err := domain.NewDayOfWeek(params.DayOfWeek)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate schedule id: %w", err)
	}

	created, err := s.repo.CreateSchedule(ctx, &domain.Schedule{
		ID:         id.String(),
		OwnerID:    ownerID,
		CourseName: courseName.String(),
		Session:    params.Session,
		DayOfWeek:  day,
		TimeStart:  params.TimeStart,
		TimeEnd:    params.TimeEnd,
		Location:   params.Location,
		Lecturer:   params.Lecturer,
	})
	if err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	return created, nil
}

// List returns the owner's schedule entries.
func (s *Service) List(ctx context.Context, ownerID string) ([]domain.Schedule, error) {
	entries, err := s.repo.ListSchedules(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return entries, nil
}

// Update applies a partial update to one entry.
func (s *Service) Update(ctx context.Context, ownerID string, params domain.UpdateScheduleParams) (*domain.Schedule, error) {
	updated, err := s.repo.UpdateSchedule(ctx, ownerID, params)
	if err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}
	return updated, nil
}

// Delete removes one entry.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.DeleteSchedule(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

// DeleteAll removes every entry the owner has and reports the count.
func (s *Service) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	deleted, err := s.repo.DeleteAllSchedules(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete all schedules: %w", err)
	}
	return deleted, nil
}
