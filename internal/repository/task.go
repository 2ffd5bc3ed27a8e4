package repository

import (
	"context"

	"github.com/ErlanBelekov/uptask/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// ListByProject returns tasks ordered by created_at ASC.
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	// Update persists name and description.
	Update(ctx context.Context, task *domain.Task) error
	// RecordStatus sets the current status and appends change to the history log.
	RecordStatus(ctx context.Context, taskID string, change domain.StatusChange) error
	// Delete removes the task and every note that references it.
	Delete(ctx context.Context, id string) error

	AppendNote(ctx context.Context, taskID, noteID string) error
	RemoveNote(ctx context.Context, taskID, noteID string) error
}

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	// ListByTask returns notes ordered by created_at ASC.
	ListByTask(ctx context.Context, taskID string) ([]*domain.Note, error)
	Delete(ctx context.Context, id string) error
}
