package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskverse/taskverse/internal/analytics"
	"github.com/taskverse/taskverse/internal/clock"
	"github.com/taskverse/taskverse/internal/domain"
	"github.com/taskverse/taskverse/internal/search"
)

// Priority bands assigned by Reorder from list position.
const (
	reorderHighBand   = 3
	reorderMediumBand = 6
)

// CreateParams carries the fields a caller may set when creating a task.
type CreateParams struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    domain.TaskPriority
	Tags        []string
	Subtasks    []domain.Subtask
	Reminders   []domain.ReminderOffset
}

// Service provides business logic for task management: CRUD with search,
// the reorder engine and the statistics endpoints.
type Service struct {
	repo  Repository
	clock clock.Clock
}

// NewService creates a task service. A nil clk falls back to the system
// clock.
func NewService(repo Repository, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	return &Service{repo: repo, clock: clk}
}

// List returns the scope's tasks in display order, filtered by the search
// query when one is given.
func (s *Service) List(ctx context.Context, scope domain.Scope, query string) ([]domain.Task, error) {
	tasks, err := s.repo.ListTasks(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	sorted := domain.SortForDisplay(tasks)
	return search.Apply(sorted, search.Compile(query), s.clock.Now()), nil
}

// Create adds a task to the scope. New tasks start Pending with an empty
// subtask list and are ranked after every existing task.
func (s *Service) Create(ctx context.Context, scope domain.Scope, params CreateParams) (*domain.Task, error) {
	existing, err := s.repo.ListTasks(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list tasks for rank: %w", err)
	}

	task, err := s.buildTask(params, nextRank(scope, existing, 0))
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateTask(ctx, scope, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

// CreateBatch adds several tasks atomically with sequential ranks. Used by
// template application.
func (s *Service) CreateBatch(ctx context.Context, scope domain.Scope, batch []CreateParams) ([]domain.Task, error) {
	if len(batch) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	existing, err := s.repo.ListTasks(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list tasks for rank: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(batch))
	for i, params := range batch {
		task, err := s.buildTask(params, nextRank(scope, existing, i))
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := s.repo.CreateTasks(ctx, scope, tasks); err != nil {
		return nil, fmt.Errorf("create task batch: %w", err)
	}

	created := make([]domain.Task, len(tasks))
	for i, task := range tasks {
		created[i] = *task
	}
	return created, nil
}

// Update applies a partial update. A status transition into Completed stamps
// CompletedAt with the current time unless the task already has one; a
// transition to any other status clears it.
func (s *Service) Update(ctx context.Context, scope domain.Scope, params domain.UpdateTaskParams) (*domain.Task, error) {
	if params.Status != nil {
		current, err := s.repo.FindTaskByID(ctx, scope, params.TaskID)
		if err != nil {
			return nil, fmt.Errorf("find task for status transition: %w", err)
		}

		if *params.Status == domain.TaskStatusCompleted {
			if current.CompletedAt == nil && params.CompletedAt == nil {
				completedAt := s.clock.Now().UTC()
				params.CompletedAt = &completedAt
			}
		} else {
			params.CompletedAt = nil
			params.ClearCompletedAt = true
		}
	}

	updated, err := s.repo.UpdateTask(ctx, scope, params)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

// Reorder rewrites ranks and priorities from the given full ordering of the
// scope's incomplete tasks: position i gets rank i, the first three tasks
// become High priority, the next three Medium, the rest Low. The rewrite is
// a single atomic batch and deliberately overwrites any priority the user
// set by hand.
func (s *Service) Reorder(ctx context.Context, scope domain.Scope, orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return domain.ErrEmptyBatch
	}

	writes := make([]domain.TaskWrite, len(orderedIDs))
	for i, id := range orderedIDs {
		priority := domain.TaskPriorityLow
		switch {
		case i < reorderHighBand:
			priority = domain.TaskPriorityHigh
		case i < reorderMediumBand:
			priority = domain.TaskPriorityMedium
		}
		writes[i] = domain.TaskWrite{TaskID: id, OrderRank: i, Priority: priority}
	}

	if err := s.repo.BatchWriteTasks(ctx, scope, writes); err != nil {
		return fmt.Errorf("reorder tasks: %w", err)
	}
	return nil
}

// Delete removes one task.
func (s *Service) Delete(ctx context.Context, scope domain.Scope, id string) error {
	if err := s.repo.DeleteTask(ctx, scope, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// DeleteAll removes every task in the scope and reports the count.
func (s *Service) DeleteAll(ctx context.Context, scope domain.Scope) (int64, error) {
	deleted, err := s.repo.DeleteAllTasks(ctx, scope)
	if err != nil {
		return 0, fmt.Errorf("delete all tasks: %w", err)
	}
	return deleted, nil
}

// Stats computes the dashboard statistics snapshot for the scope.
func (s *Service) Stats(ctx context.Context, scope domain.Scope) (domain.TaskStats, error) {
	tasks, err := s.repo.ListTasks(ctx, scope)
	if err != nil {
		return domain.TaskStats{}, fmt.Errorf("list tasks for stats: %w", err)
	}
	return analytics.Aggregate(tasks, s.clock.Now()), nil
}

// AtRisk returns the top at-risk incomplete tasks in display order.
func (s *Service) AtRisk(ctx context.Context, scope domain.Scope) ([]domain.TaskWithRisk, error) {
	tasks, err := s.repo.ListTasks(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list tasks for risk: %w", err)
	}
	sorted := domain.SortForDisplay(tasks)
	return analytics.RankByRisk(sorted, s.clock.Now(), analytics.DefaultRiskLimit), nil
}

// Focus returns today's focus selection.
func (s *Service) Focus(ctx context.Context, scope domain.Scope) ([]domain.Task, error) {
	tasks, err := s.repo.ListTasks(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list tasks for focus: %w", err)
	}
	sorted := domain.SortForDisplay(tasks)
	return analytics.SelectFocus(sorted, s.clock.Now(), analytics.DefaultFocusLimit), nil
}

// buildTask validates params and assembles a new task aggregate.
func (s *Service) buildTask(params CreateParams, rank int) (*domain.Task, error) {
	title, err := domain.NewTitle(params.Title)
	if err != nil {
		return nil, err
	}

	priority := params.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	} else if _, err := domain.NewTaskPriority(string(priority)); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate task id: %w", err)
	}

	subtasks := params.Subtasks
	if subtasks == nil {
		subtasks = []domain.Subtask{}
	}

	return &domain.Task{
		ID:          id.String(),
		Title:       title.String(),
		Description: params.Description,
		DueDate:     params.DueDate.UTC(),
		CreatedAt:   s.clock.Now().UTC(),
		Priority:    priority,
		Status:      domain.TaskStatusPending,
		Tags:        params.Tags,
		Subtasks:    subtasks,
		Reminders:   params.Reminders,
		OrderRank:   rank,
	}, nil
}

// nextRank picks the rank for the offset-th new task. Personal collections
// rank after the current maximum; workspace collections use count-based
// ranks, matching how shared tasks have always been numbered.
func nextRank(scope domain.Scope, existing []domain.Task, offset int) int {
	if scope.Kind == domain.ScopeKindWorkspace {
		return len(existing) + offset + 1
	}
	return domain.MaxOrderRank(existing) + offset + 1
}
