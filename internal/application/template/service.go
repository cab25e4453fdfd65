package template

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskverse/taskverse/internal/application/task"
	"github.com/taskverse/taskverse/internal/clock"
	"github.com/taskverse/taskverse/internal/domain"
)

// Default due-date offset for tasks in user-created templates.
const defaultDueInDays = 7

// TaskParams is one task blueprint in a template creation request.
type TaskParams struct {
	Title       string
	Description string
	Priority    domain.TaskPriority
}

// CreateParams carries the fields for a new user template.
type CreateParams struct {
	Title       string
	Description string
	Category    string
	Tasks       []TaskParams
}

// Service provides the template catalog: built-in starter templates plus
// published user templates, draft creation, and materializing a template
// into a task batch.
type Service struct {
	repo  Repository
	clock clock.Clock
}

// NewService creates a template service. A nil clk falls back to the system
// clock.
func NewService(repo Repository, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	return &Service{repo: repo, clock: clk}
}

// List returns the catalog: built-ins first, then published user templates.
func (s *Service) List(ctx context.Context) ([]domain.Template, error) {
	published, err := s.repo.ListPublishedTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published templates: %w", err)
	}

	catalog := make([]domain.Template, 0, len(builtinTemplates)+len(published))
	catalog = append(catalog, builtinTemplates...)
	catalog = append(catalog, published...)
	return catalog, nil
}

// Create stores a draft template. Blueprint tasks are tagged with the
// template's category and carry the default due-date offset.
func (s *Service) Create(ctx context.Context, authorID, authorName string, params CreateParams) (*domain.Template, error) {
	title, err := domain.NewTitle(params.Title)
	if err != nil {
		return nil, err
	}
	if len(params.Tasks) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	tasks := make([]domain.TemplateTask, 0, len(params.Tasks))
	for _, tp := range params.Tasks {
		taskTitle, err := domain.NewTitle(tp.Title)
		if err != nil {
			return nil, err
		}
		priority := tp.Priority
		if priority == "" {
			priority = domain.TaskPriorityMedium
		} else if _, err := domain.NewTaskPriority(string(priority)); err != nil {
			return nil, err
		}
		tasks = append(tasks, domain.TemplateTask{
			Title:       taskTitle.String(),
			Description: tp.Description,
			Priority:    priority,
			Tags:        []string{params.Category},
			DueInDays:   defaultDueInDays,
		})
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate template id: %w", err)
	}

	created, err := s.repo.CreateTemplate(ctx, &domain.Template{
		ID:          id.String(),
		Title:       title.String(),
		Description: params.Description,
		Category:    params.Category,
		AuthorID:    authorID,
		AuthorName:  authorName,
		Published:   false,
		Tasks:       tasks,
		CreatedAt:   s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return created, nil
}

// Materialize resolves a template, built-in or stored, into the task batch
// applying it would create. Due dates are the current time plus each
// blueprint's day offset.
func (s *Service) Materialize(ctx context.Context, templateID string) ([]task.CreateParams, error) {
	tpl, err := s.find(ctx, templateID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	batch := make([]task.CreateParams, 0, len(tpl.Tasks))
	for _, blueprint := range tpl.Tasks {
		batch = append(batch, task.CreateParams{
			Title:       blueprint.Title,
			Description: blueprint.Description,
			DueDate:     now.AddDate(0, 0, blueprint.DueInDays),
			Priority:    blueprint.Priority,
			Tags:        blueprint.Tags,
		})
	}
	return batch, nil
}

func (s *Service) find(ctx context.Context, templateID string) (*domain.Template, error) {
	for i := range builtinTemplates {
		if builtinTemplates[i].ID == templateID {
			return &builtinTemplates[i], nil
		}
	}

	tpl, err := s.repo.FindTemplateByID(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("find template: %w", err)
	}
	return tpl, nil
}
