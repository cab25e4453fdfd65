package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskverse/taskverse/internal/domain"
)

// CreateNote persists a note.
func (s *Store) CreateNote(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO notes (id, owner_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, owner_id, content, created_at`,
		note.ID, note.OwnerID, note.Content, note.CreatedAt,
	)

	var stored domain.Note
	if err := row.Scan(&stored.ID, &stored.OwnerID, &stored.Content, &stored.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return &stored, nil
}

// ListNotes retrieves the owner's notes, newest first.
func (s *Store) ListNotes(ctx context.Context, ownerID string) ([]domain.Note, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, owner_id, content, created_at
		FROM notes
		WHERE owner_id = $1
		ORDER BY created_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

// UpdateNote applies a partial update scoped to the owner.
func (s *Store) UpdateNote(ctx context.Context, ownerID string, params domain.UpdateNoteParams) (*domain.Note, error) {
	if params.Content == nil {
		return s.findNote(ctx, ownerID, params.NoteID)
	}

	row := s.db.QueryRow(ctx, `
		UPDATE notes SET content = $1
		WHERE id = $2 AND owner_id = $3
		RETURNING id, owner_id, content, created_at`,
		*params.Content, params.NoteID, ownerID,
	)

	var n domain.Note
	err := row.Scan(&n.ID, &n.OwnerID, &n.Content, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return &n, nil
}

// DeleteNote removes one of the owner's notes.
func (s *Store) DeleteNote(ctx context.Context, ownerID, id string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM notes WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// DeleteAllNotes removes every note the owner has.
func (s *Store) DeleteAllNotes(ctx context.Context, ownerID string) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM notes WHERE owner_id = $1`,
		ownerID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete all notes: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Store) findNote(ctx context.Context, ownerID, id string) (*domain.Note, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, owner_id, content, created_at
		FROM notes
		WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)

	var n domain.Note
	err := row.Scan(&n.ID, &n.OwnerID, &n.Content, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find note: %w", err)
	}
	return &n, nil
}
