package domain

import (
	"errors"
	"time"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrNotAuthor    = errors.New("only the note author or the project manager may do this")
)

type Note struct {
	ID        string
	Content   string
	CreatedBy string
	TaskID    string
	CreatedAt time.Time
}

// CanDelete reports whether userID wrote the note or manages project.
func (n *Note) CanDelete(userID string, project *Project) bool {
	return n.CreatedBy == userID || project.IsManager(userID)
}
