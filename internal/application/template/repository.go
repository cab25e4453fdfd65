package template

import (
	"context"

	"github.com/taskverse/taskverse/internal/domain"
)

// Repository defines storage operations for user-created templates.
// Built-in templates live in code, not storage.
type Repository interface {
	// CreateTemplate persists a template and returns it as stored.
	CreateTemplate(ctx context.Context, tpl *domain.Template) (*domain.Template, error)

	// FindTemplateByID retrieves a stored template.
	// Returns domain.ErrTemplateNotFound if it doesn't exist.
	FindTemplateByID(ctx context.Context, id string) (*domain.Template, error)

	// ListPublishedTemplates retrieves every published template.
	ListPublishedTemplates(ctx context.Context) ([]domain.Template, error)
}
