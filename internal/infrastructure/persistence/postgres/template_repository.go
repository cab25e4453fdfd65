package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskverse/taskverse/internal/domain"
)

const templateColumns = `id, title, description, category, author_id, author_name,
	published, tasks, created_at`

// templateTaskRecord is the jsonb layout for template task blueprints.
type templateTaskRecord struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
	DueInDays   int      `json:"dueInDays"`
}

// CreateTemplate persists a user template.
func (s *Store) CreateTemplate(ctx context.Context, tpl *domain.Template) (*domain.Template, error) {
	tasks, err := marshalTemplateTasks(tpl.Tasks)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO templates
			(id, title, description, category, author_id, author_name, published, tasks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+templateColumns,
		tpl.ID, tpl.Title, tpl.Description, tpl.Category, tpl.AuthorID, tpl.AuthorName,
		tpl.Published, tasks, tpl.CreatedAt,
	)

	stored, err := scanTemplate(row)
	if err != nil {
		return nil, fmt.Errorf("insert template: %w", err)
	}
	return stored, nil
}

// FindTemplateByID retrieves a stored template.
func (s *Store) FindTemplateByID(ctx context.Context, id string) (*domain.Template, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+templateColumns+`
		FROM templates
		WHERE id = $1`, id,
	)

	tpl, err := scanTemplate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find template: %w", err)
	}
	return tpl, nil
}

// ListPublishedTemplates retrieves every published template, oldest first.
func (s *Store) ListPublishedTemplates(ctx context.Context) ([]domain.Template, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+templateColumns+`
		FROM templates
		WHERE published
		ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list published templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return templates, nil
}

func marshalTemplateTasks(tasks []domain.TemplateTask) ([]byte, error) {
	records := make([]templateTaskRecord, len(tasks))
	for i, t := range tasks {
		tags := t.Tags
		if tags == nil {
			tags = []string{}
		}
		records[i] = templateTaskRecord{
			Title:       t.Title,
			Description: t.Description,
			Priority:    string(t.Priority),
			Tags:        tags,
			DueInDays:   t.DueInDays,
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal template tasks: %w", err)
	}
	return data, nil
}

func scanTemplate(row pgx.Row) (*domain.Template, error) {
	var (
		tpl       domain.Template
		tasksJSON []byte
	)

	err := row.Scan(&tpl.ID, &tpl.Title, &tpl.Description, &tpl.Category,
		&tpl.AuthorID, &tpl.AuthorName, &tpl.Published, &tasksJSON, &tpl.CreatedAt)
	if err != nil {
		return nil, err
	}

	var records []templateTaskRecord
	if err := json.Unmarshal(tasksJSON, &records); err != nil {
		return nil, fmt.Errorf("unmarshal template tasks: %w", err)
	}
	tpl.Tasks = make([]domain.TemplateTask, len(records))
	for i, rec := range records {
		tpl.Tasks[i] = domain.TemplateTask{
			Title:       rec.Title,
			Description: rec.Description,
			Priority:    domain.TaskPriority(rec.Priority),
			Tags:        rec.Tags,
			DueInDays:   rec.DueInDays,
		}
	}

	return &tpl, nil
}
