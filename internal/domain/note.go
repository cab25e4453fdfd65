package domain

import "time"

// Note is a free-form text note. Notes are listed most recent first.
type Note struct {
	ID        string
	OwnerID   string
	Content   string
	CreatedAt time.Time
}
