package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskverse/taskverse/internal/clock"
	"github.com/taskverse/taskverse/internal/domain"
)

var testNow = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

type fakeRepo struct {
	tasks map[domain.Scope][]domain.Task
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tasks: make(map[domain.Scope][]domain.Task)}
}

func (r *fakeRepo) CreateTask(_ context.Context, scope domain.Scope, task *domain.Task) (*domain.Task, error) {
	r.tasks[scope] = append(r.tasks[scope], *task)
	stored := *task
	return &stored, nil
}

func (r *fakeRepo) CreateTasks(_ context.Context, scope domain.Scope, tasks []*domain.Task) error {
	for _, task := range tasks {
		r.tasks[scope] = append(r.tasks[scope], *task)
	}
	return nil
}

func (r *fakeRepo) FindTaskByID(_ context.Context, scope domain.Scope, id string) (*domain.Task, error) {
	for _, task := range r.tasks[scope] {
		if task.ID == id {
			found := task
			return &found, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *fakeRepo) ListTasks(_ context.Context, scope domain.Scope) ([]domain.Task, error) {
	out := make([]domain.Task, len(r.tasks[scope]))
	copy(out, r.tasks[scope])
	return out, nil
}

func (r *fakeRepo) UpdateTask(_ context.Context, scope domain.Scope, params domain.UpdateTaskParams) (*domain.Task, error) {
	for i, task := range r.tasks[scope] {
		if task.ID != params.TaskID {
			continue
		}
		if params.Title != nil {
			task.Title = params.Title.String()
		}
		if params.Description != nil {
			task.Description = *params.Description
		}
		if params.DueDate != nil {
			task.DueDate = *params.DueDate
		}
		if params.Priority != nil {
			task.Priority = *params.Priority
		}
		if params.Status != nil {
			task.Status = *params.Status
		}
		if params.Tags != nil {
			task.Tags = *params.Tags
		}
		if params.Subtasks != nil {
			task.Subtasks = *params.Subtasks
		}
		if params.Reminders != nil {
			task.Reminders = *params.Reminders
		}
		if params.OrderRank != nil {
			task.OrderRank = *params.OrderRank
		}
		if params.CompletedAt != nil {
			task.CompletedAt = params.CompletedAt
		} else if params.ClearCompletedAt {
			task.CompletedAt = nil
		}
		r.tasks[scope][i] = task
		updated := task
		return &updated, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *fakeRepo) DeleteTask(_ context.Context, scope domain.Scope, id string) error {
	for i, task := range r.tasks[scope] {
		if task.ID == id {
			r.tasks[scope] = append(r.tasks[scope][:i], r.tasks[scope][i+1:]...)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (r *fakeRepo) DeleteAllTasks(_ context.Context, scope domain.Scope) (int64, error) {
	n := int64(len(r.tasks[scope]))
	r.tasks[scope] = nil
	return n, nil
}

func (r *fakeRepo) BatchWriteTasks(_ context.Context, scope domain.Scope, writes []domain.TaskWrite) error {
	index := make(map[string]int, len(r.tasks[scope]))
	for i, task := range r.tasks[scope] {
		index[task.ID] = i
	}
	for _, write := range writes {
		if _, ok := index[write.TaskID]; !ok {
			return domain.ErrTaskNotFound
		}
	}
	for _, write := range writes {
		i := index[write.TaskID]
		r.tasks[scope][i].OrderRank = write.OrderRank
		r.tasks[scope][i].Priority = write.Priority
	}
	return nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, clock.Fixed{Instant: testNow}), repo
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, _ := newTestService()
	scope := domain.UserScope("user-1")

	created, err := svc.Create(context.Background(), scope, CreateParams{
		Title:   "Write the quarterly report",
		DueDate: testNow.AddDate(0, 0, 3),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.TaskStatusPending, created.Status)
	assert.Equal(t, domain.TaskPriorityMedium, created.Priority)
	assert.NotNil(t, created.Subtasks)
	assert.Empty(t, created.Subtasks)
	assert.Equal(t, 1, created.OrderRank)
	assert.Equal(t, testNow, created.CreatedAt)
}

func TestCreateRanksAfterExisting(t *testing.T) {
	svc, repo := newTestService()
	scope := domain.UserScope("user-1")
	repo.tasks[scope] = []domain.Task{{ID: "a", OrderRank: 4}, {ID: "b", OrderRank: 9}}

	created, err := svc.Create(context.Background(), scope, CreateParams{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, 10, created.OrderRank)
}

func TestCreateWorkspaceUsesCountBasedRank(t *testing.T) {
	svc, repo := newTestService()
	scope := domain.WorkspaceScope("ws-1")
	repo.tasks[scope] = []domain.Task{{ID: "a", OrderRank: 7}, {ID: "b", OrderRank: 8}}

	created, err := svc.Create(context.Background(), scope, CreateParams{Title: "Shared"})
	require.NoError(t, err)
	assert.Equal(t, 3, created.OrderRank)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService()
	scope := domain.UserScope("user-1")

	_, err := svc.Create(context.Background(), scope, CreateParams{Title: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidTitle)

	_, err = svc.Create(context.Background(), scope, CreateParams{Title: "ok", Priority: "Urgent"})
	require.ErrorIs(t, err, domain.ErrInvalidTaskPriority)
}

func TestCreateBatchSequentialRanks(t *testing.T) {
	svc, repo := newTestService()
	scope := domain.UserScope("user-1")
	repo.tasks[scope] = []domain.Task{{ID: "a", OrderRank: 2}}

	created, err := svc.CreateBatch(context.Background(), scope, []CreateParams{
		{Title: "one"}, {Title: "two"}, {Title: "three"},
	})
	require.NoError(t, err)
	require.Len(t, created, 3)
	assert.Equal(t, 3, created[0].OrderRank)
	assert.Equal(t, 4, created[1].OrderRank)
	assert.Equal(t, 5, created[2].OrderRank)
}

func TestCreateBatchEmpty(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateBatch(context.Background(), domain.UserScope("u"), nil)
	require.ErrorIs(t, err, domain.ErrEmptyBatch)
}

func TestUpdateStatusTransitionSetsCompletedAt(t *testing.T) {
	svc, repo := newTestService()
	scope := domain.UserScope("user-1")
	repo.tasks[scope] = []domain.Task{{ID: "t1", Status: domain.TaskStatusPending}}

	status := domain.TaskStatusCompleted
	updated, err := svc.Update(context.Background(), scope, domain.UpdateTaskParams{
		TaskID: "t1",
		Status: &status,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, testNow, *updated.CompletedAt)
}

func TestUpdateStatusKeepsExistingCompletedAt(t *testing.T) {
	svc, repo := newTestService()
	scope := domain.UserScope("user-1")
	earlier := testNow.AddDate(0, 0, -1)
	repo.tasks[scope] = []domain.Task{{ID: "t1", Status: domain.TaskStatusCompleted, CompletedAt: &earlier}}

	status := domain.TaskStatusCompleted
	updated, err := svc.Update(context.Background(), scope, domain.UpdateTaskParams{
		TaskID: "t1",
		Status: &status,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, earlier, *updated.CompletedAt)
}

func TestUpdateStatusAwayFromCompletedClears(t *testing.T) {
	svc, repo := newTestService()
	scope := domain.UserScope("user-1")
	completedAt := testNow.AddDate(0, 0, -1)
	repo.tasks[scope] = []domain.Task{{ID: "t1", Status: domain.TaskStatusCompleted, CompletedAt: &completedAt}}

	status := domain.TaskStatusInProgress
	updated, err := svc.Update(context.Background(), scope, domain.UpdateTaskParams{
		TaskID: "t1",
		Status: &status,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateMissingTask(t *testing.T) {
	svc, _ := newTestService()
	status := domain.TaskStatusCompleted
	_, err := svc.Update(context.Background(), domain.UserScope("u"), domain.UpdateTaskParams{
		TaskID: "nope",
		Status: &status,
	})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestReorderAssignsRanksAndPriorityBands(t *testing.T) {
	svc, repo := newTestService()
	scope := domain.UserScope("user-1")
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, id := range ids {
		repo.tasks[scope] = append(repo.tasks[scope], domain.Task{ID: id, Priority: domain.TaskPriorityLow})
	}

	require.NoError(t, svc.Reorder(context.Background(), scope, ids))

	wantPriorities := []domain.TaskPriority{
		domain.TaskPriorityHigh, domain.TaskPriorityHigh, domain.TaskPriorityHigh,
		domain.TaskPriorityMedium, domain.TaskPriorityMedium, domain.TaskPriorityMedium,
		domain.TaskPriorityLow, domain.TaskPriorityLow,
	}
	for i, task := range repo.tasks[scope] {
		assert.Equal(t, i, task.OrderRank)
		assert.Equal(t, wantPriorities[i], task.Priority, "position %d", i)
	}
}

func TestReorderEmptyAndMissing(t *testing.T) {
	svc, _ := newTestService()
	scope := domain.UserScope("user-1")

	require.ErrorIs(t, svc.Reorder(context.Background(), scope, nil), domain.ErrEmptyBatch)
	require.ErrorIs(t, svc.Reorder(context.Background(), scope, []string{"ghost"}), domain.ErrTaskNotFound)
}

func TestListSortsAndFilters(t *testing.T) {
	svc, repo := newTestService()
	scope := domain.UserScope("user-1")
	repo.tasks[scope] = []domain.Task{
		{ID: "done", Title: "Ship release", Status: domain.TaskStatusCompleted, OrderRank: 0},
		{ID: "late", Title: "Ship hotfix", Status: domain.TaskStatusPending, OrderRank: 2},
		{ID: "first", Title: "Plan sprint", Status: domain.TaskStatusPending, OrderRank: 1},
	}

	all, err := svc.List(context.Background(), scope, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].ID)
	assert.Equal(t, "late", all[1].ID)
	assert.Equal(t, "done", all[2].ID)

	filtered, err := svc.List(context.Background(), scope, "ship")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "late", filtered[0].ID)
	assert.Equal(t, "done", filtered[1].ID)
}

func TestStatsAndFocusUseInjectedClock(t *testing.T) {
	svc, repo := newTestService()
	scope := domain.UserScope("user-1")
	completedAt := testNow.Add(-time.Hour)
	repo.tasks[scope] = []domain.Task{
		{ID: "today", Status: domain.TaskStatusPending, DueDate: testNow.Add(2 * time.Hour), Priority: domain.TaskPriorityHigh},
		{ID: "done", Status: domain.TaskStatusCompleted, CreatedAt: testNow.AddDate(0, 0, -1), CompletedAt: &completedAt},
	}

	stats, err := svc.Stats(context.Background(), scope)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.CompletedToday)
	assert.Equal(t, 50, stats.CompletionRate)

	focus, err := svc.Focus(context.Background(), scope)
	require.NoError(t, err)
	require.Len(t, focus, 1)
	assert.Equal(t, "today", focus[0].ID)

	atRisk, err := svc.AtRisk(context.Background(), scope)
	require.NoError(t, err)
	require.Len(t, atRisk, 1)
	assert.Equal(t, "today", atRisk[0].ID)
}
