package note

import (
	"context"

	"github.com/taskverse/taskverse/internal/domain"
)

// Repository defines storage operations for notes.
type Repository interface {
	// CreateNote persists a note and returns it as stored.
	CreateNote(ctx context.Context, note *domain.Note) (*domain.Note, error)

	// ListNotes retrieves the owner's notes, newest first.
	ListNotes(ctx context.Context, ownerID string) ([]domain.Note, error)

	// UpdateNote applies a partial update.
	// Returns domain.ErrNoteNotFound if the note doesn't exist for the owner.
	UpdateNote(ctx context.Context, ownerID string, params domain.UpdateNoteParams) (*domain.Note, error)

	// DeleteNote removes a note.
	// Returns domain.ErrNoteNotFound if the note doesn't exist for the owner.
	DeleteNote(ctx context.Context, ownerID, id string) error

	// DeleteAllNotes removes every note the owner has, in one transaction,
	// and reports the count.
	DeleteAllNotes(ctx context.Context, ownerID string) (int64, error)
}
