package usecase

import (
	"context"
	"log/slog"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/repository"
	"github.com/google/uuid"
)

type NoteUsecase struct {
	tasks  repository.TaskRepository
	notes  repository.NoteRepository
	logger *slog.Logger
}

func NewNoteUsecase(tasks repository.TaskRepository, notes repository.NoteRepository, logger *slog.Logger) *NoteUsecase {
	return &NoteUsecase{
		tasks:  tasks,
		notes:  notes,
		logger: logger.With("component", "note_usecase"),
	}
}

func (u *NoteUsecase) Create(ctx context.Context, task *domain.Task, authorID, content string) (*domain.Note, error) {
	n := &domain.Note{
		ID:        uuid.NewString(),
		Content:   content,
		CreatedBy: authorID,
		TaskID:    task.ID,
	}

	err := bestEffort(ctx, u.logger,
		write{op: "create note", fn: func(ctx context.Context) error { return u.notes.Create(ctx, n) }},
		write{op: "append note", fn: func(ctx context.Context) error { return u.tasks.AppendNote(ctx, task.ID, n.ID) }},
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (u *NoteUsecase) List(ctx context.Context, task *domain.Task) ([]*domain.Note, error) {
	return u.notes.ListByTask(ctx, task.ID)
}

func (u *NoteUsecase) Delete(ctx context.Context, task *domain.Task, note *domain.Note) error {
	return bestEffort(ctx, u.logger,
		write{op: "delete note", fn: func(ctx context.Context) error { return u.notes.Delete(ctx, note.ID) }},
		write{op: "remove note", fn: func(ctx context.Context) error { return u.tasks.RemoveNote(ctx, task.ID, note.ID) }},
	)
}
