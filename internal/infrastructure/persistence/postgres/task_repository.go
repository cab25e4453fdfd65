package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taskverse/taskverse/internal/domain"
)

const taskColumns = `id, title, description, due_date, created_at, completed_at,
	priority, status, tags, subtasks, reminders, order_rank`

// CreateTask inserts a task into the scope's collection.
func (s *Store) CreateTask(ctx context.Context, scope domain.Scope, t *domain.Task) (*domain.Task, error) {
	tags, subtasks, reminders, err := marshalTaskJSON(t)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO tasks (id, scope_kind, scope_id, title, description, due_date,
			created_at, completed_at, priority, status, tags, subtasks, reminders, order_rank)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+taskColumns,
		t.ID, scope.Kind, scope.ID, t.Title, t.Description, t.DueDate,
		t.CreatedAt, t.CompletedAt, t.Priority, t.Status, tags, subtasks, reminders, t.OrderRank,
	)

	created, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return created, nil
}

// CreateTasks inserts a batch of tasks in one transaction.
func (s *Store) CreateTasks(ctx context.Context, scope domain.Scope, tasks []*domain.Task) error {
	return s.atomic(ctx, "create_tasks", func(txStore *Store) error {
		for _, t := range tasks {
			if _, err := txStore.CreateTask(ctx, scope, t); err != nil {
				return err
			}
		}
		return nil
	})
}

// FindTaskByID retrieves one task from the scope.
func (s *Store) FindTaskByID(ctx context.Context, scope domain.Scope, id string) (*domain.Task, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1 AND scope_kind = $2 AND scope_id = $3`,
		id, scope.Kind, scope.ID,
	)

	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return t, nil
}

// ListTasks retrieves every task in the scope ordered by creation.
func (s *Store) ListTasks(ctx context.Context, scope domain.Scope) ([]domain.Task, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE scope_kind = $1 AND scope_id = $2
		ORDER BY created_at, id`,
		scope.Kind, scope.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// UpdateTask applies a partial update and returns the stored task.
func (s *Store) UpdateTask(ctx context.Context, scope domain.Scope, params domain.UpdateTaskParams) (*domain.Task, error) {
	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Title != nil {
		set("title", params.Title.String())
	}
	if params.Description != nil {
		set("description", *params.Description)
	}
	if params.DueDate != nil {
		set("due_date", *params.DueDate)
	}
	if params.Priority != nil {
		set("priority", *params.Priority)
	}
	if params.Status != nil {
		set("status", *params.Status)
	}
	if params.Tags != nil {
		data, err := marshalStringSlice(*params.Tags)
		if err != nil {
			return nil, err
		}
		set("tags", data)
	}
	if params.Subtasks != nil {
		data, err := json.Marshal(subtaskRecords(*params.Subtasks))
		if err != nil {
			return nil, fmt.Errorf("marshal subtasks: %w", err)
		}
		set("subtasks", data)
	}
	if params.Reminders != nil {
		data, err := json.Marshal(*params.Reminders)
		if err != nil {
			return nil, fmt.Errorf("marshal reminders: %w", err)
		}
		set("reminders", data)
	}
	if params.OrderRank != nil {
		set("order_rank", *params.OrderRank)
	}
	if params.CompletedAt != nil {
		set("completed_at", *params.CompletedAt)
	} else if params.ClearCompletedAt {
		sets = append(sets, "completed_at = NULL")
	}

	if len(sets) == 0 {
		return s.FindTaskByID(ctx, scope, params.TaskID)
	}

	args = append(args, params.TaskID, scope.Kind, scope.ID)
	query := fmt.Sprintf(`
		UPDATE tasks SET %s
		WHERE id = $%d AND scope_kind = $%d AND scope_id = $%d
		RETURNING `+taskColumns,
		strings.Join(sets, ", "), len(args)-2, len(args)-1, len(args),
	)

	t, err := scanTask(s.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

// DeleteTask removes one task from the scope.
func (s *Store) DeleteTask(ctx context.Context, scope domain.Scope, id string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM tasks WHERE id = $1 AND scope_kind = $2 AND scope_id = $3`,
		id, scope.Kind, scope.ID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// DeleteAllTasks removes every task in the scope.
func (s *Store) DeleteAllTasks(ctx context.Context, scope domain.Scope) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM tasks WHERE scope_kind = $1 AND scope_id = $2`,
		scope.Kind, scope.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete all tasks: %w", err)
	}
	return tag.RowsAffected(), nil
}

// BatchWriteTasks rewrites ranks and priorities in one transaction. Any
// missing task aborts the whole batch.
func (s *Store) BatchWriteTasks(ctx context.Context, scope domain.Scope, writes []domain.TaskWrite) error {
	return s.atomic(ctx, "batch_write_tasks", func(txStore *Store) error {
		for _, write := range writes {
			tag, err := txStore.db.Exec(ctx, `
				UPDATE tasks SET order_rank = $1, priority = $2
				WHERE id = $3 AND scope_kind = $4 AND scope_id = $5`,
				write.OrderRank, write.Priority, write.TaskID, scope.Kind, scope.ID,
			)
			if err != nil {
				return fmt.Errorf("update task %s: %w", write.TaskID, err)
			}
			if tag.RowsAffected() == 0 {
				return domain.ErrTaskNotFound
			}
		}
		return nil
	})
}

// ListRemindableTasks retrieves every incomplete task across all scopes.
// The reminder worker sweeps these for due-date notifications.
func (s *Store) ListRemindableTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE status <> $1
		ORDER BY due_date`,
		domain.TaskStatusCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("list remindable tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// subtaskRecord is the jsonb layout for subtasks.
type subtaskRecord struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func subtaskRecords(subtasks []domain.Subtask) []subtaskRecord {
	records := make([]subtaskRecord, len(subtasks))
	for i, st := range subtasks {
		records[i] = subtaskRecord{ID: st.ID, Text: st.Text, Completed: st.Completed}
	}
	return records
}

func marshalStringSlice(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("marshal string slice: %w", err)
	}
	return data, nil
}

func marshalTaskJSON(t *domain.Task) (tags, subtasks, reminders []byte, err error) {
	if tags, err = marshalStringSlice(t.Tags); err != nil {
		return nil, nil, nil, err
	}
	if subtasks, err = json.Marshal(subtaskRecords(t.Subtasks)); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal subtasks: %w", err)
	}
	rems := t.Reminders
	if rems == nil {
		rems = []domain.ReminderOffset{}
	}
	if reminders, err = json.Marshal(rems); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal reminders: %w", err)
	}
	return tags, subtasks, reminders, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t           domain.Task
		completedAt *time.Time
		tagsJSON    []byte
		subsJSON    []byte
		remsJSON    []byte
	)

	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.DueDate, &t.CreatedAt, &completedAt,
		&t.Priority, &t.Status, &tagsJSON, &subsJSON, &remsJSON, &t.OrderRank,
	)
	if err != nil {
		return nil, err
	}

	t.CompletedAt = completedAt
	if err := json.Unmarshal(tagsJSON, &t.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}

	var records []subtaskRecord
	if err := json.Unmarshal(subsJSON, &records); err != nil {
		return nil, fmt.Errorf("unmarshal subtasks: %w", err)
	}
	t.Subtasks = make([]domain.Subtask, len(records))
	for i, rec := range records {
		t.Subtasks[i] = domain.Subtask{ID: rec.ID, Text: rec.Text, Completed: rec.Completed}
	}

	if err := json.Unmarshal(remsJSON, &t.Reminders); err != nil {
		return nil, fmt.Errorf("unmarshal reminders: %w", err)
	}

	return &t, nil
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}
