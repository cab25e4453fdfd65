package note

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/taskverse/taskverse/internal/clock"
	"github.com/taskverse/taskverse/internal/domain"
)

// Service provides business logic for free-form notes.
type Service struct {
	repo  Repository
	clock clock.Clock
}

// NewService creates a note service. A nil clk falls back to the system clock.
func NewService(repo Repository, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	return &Service{repo: repo, clock: clk}
}

// Add creates a note for the owner.
func (s *Service) Add(ctx context.Context, ownerID, content string) (*domain.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyNoteContent
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate note id: %w", err)
	}

	created, err := s.repo.CreateNote(ctx, &domain.Note{
		ID:        id.String(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return created, nil
}

// List returns the owner's notes, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]domain.Note, error) {
	notes, err := s.repo.ListNotes(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Update rewrites a note's content.
func (s *Service) Update(ctx context.Context, ownerID, id, content string) (*domain.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyNoteContent
	}

	updated, err := s.repo.UpdateNote(ctx, ownerID, domain.UpdateNoteParams{
		NoteID:  id,
		Content: &content,
	})
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return updated, nil
}

// Delete removes one note.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.DeleteNote(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// DeleteAll removes every note the owner has and reports the count.
func (s *Service) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	deleted, err := s.repo.DeleteAllNotes(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete all notes: %w", err)
	}
	return deleted, nil
}
