package task

import (
	"context"

	"github.com/taskverse/taskverse/internal/domain"
)

// Repository defines storage operations for task collections. Every
// operation is scoped: a personal collection (user scope) or a shared
// workspace collection.
type Repository interface {
	// CreateTask persists a new task and returns it as stored.
	CreateTask(ctx context.Context, scope domain.Scope, task *domain.Task) (*domain.Task, error)

	// CreateTasks persists a batch of tasks in one transaction. Either all
	// tasks are created or none.
	CreateTasks(ctx context.Context, scope domain.Scope, tasks []*domain.Task) error

	// FindTaskByID retrieves a single task.
	// Returns domain.ErrTaskNotFound if it doesn't exist in the scope.
	FindTaskByID(ctx context.Context, scope domain.Scope, id string) (*domain.Task, error)

	// ListTasks retrieves every task in the scope, in storage order.
	// Callers apply display sorting.
	ListTasks(ctx context.Context, scope domain.Scope) ([]domain.Task, error)

	// UpdateTask applies a partial update and returns the updated task.
	// Returns domain.ErrTaskNotFound if the task doesn't exist in the scope.
	UpdateTask(ctx context.Context, scope domain.Scope, params domain.UpdateTaskParams) (*domain.Task, error)

	// DeleteTask removes a task.
	// Returns domain.ErrTaskNotFound if it doesn't exist in the scope.
	DeleteTask(ctx context.Context, scope domain.Scope, id string) error

	// DeleteAllTasks removes every task in the scope and reports how many
	// were deleted.
	DeleteAllTasks(ctx context.Context, scope domain.Scope) (int64, error)

	// BatchWriteTasks applies rank and priority rewrites in one transaction.
	// Either every write lands or none. Returns domain.ErrTaskNotFound if
	// any referenced task doesn't exist in the scope.
	BatchWriteTasks(ctx context.Context, scope domain.Scope, writes []domain.TaskWrite) error
}
