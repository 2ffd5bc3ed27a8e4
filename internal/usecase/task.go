package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/repository"
	"github.com/google/uuid"
)

type TaskUsecase struct {
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
	notes    repository.NoteRepository
	users    repository.UserRepository
	logger   *slog.Logger
	now      func() time.Time
}

func NewTaskUsecase(
	projects repository.ProjectRepository,
	tasks repository.TaskRepository,
	notes repository.NoteRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *TaskUsecase {
	return &TaskUsecase{
		projects: projects,
		tasks:    tasks,
		notes:    notes,
		users:    users,
		logger:   logger.With("component", "task_usecase"),
		now:      time.Now,
	}
}

type TaskInput struct {
	Name        string
	Description string
}

// Create stores a pending task under project and appends it to the project's task list.
func (u *TaskUsecase) Create(ctx context.Context, project *domain.Project, in TaskInput) (*domain.Task, error) {
	t := &domain.Task{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		ProjectID:   project.ID,
		Status:      domain.TaskPending,
	}

	err := bestEffort(ctx, u.logger,
		write{op: "create task", fn: func(ctx context.Context) error { return u.tasks.Create(ctx, t) }},
		write{op: "append task", fn: func(ctx context.Context) error { return u.projects.AppendTask(ctx, project.ID, t.ID) }},
	)
	if err != nil {
		return nil, err
	}
	project.Tasks = append(project.Tasks, t.ID)
	return t, nil
}

func (u *TaskUsecase) List(ctx context.Context, project *domain.Project) ([]*domain.Task, error) {
	return u.tasks.ListByProject(ctx, project.ID)
}

// StatusEntry is a status change with its author expanded.
type StatusEntry struct {
	User      domain.Identity
	Status    domain.TaskStatus
	ChangedAt time.Time
}

// NoteEntry is a note with its creator expanded.
type NoteEntry struct {
	Note      *domain.Note
	CreatedBy domain.Identity
}

type TaskDetails struct {
	Task        *domain.Task
	CompletedBy []StatusEntry
	Notes       []NoteEntry
}

// Get expands the task's status history and notes with user identities.
// A user that no longer resolves keeps only its id.
func (u *TaskUsecase) Get(ctx context.Context, task *domain.Task) (*TaskDetails, error) {
	notes, err := u.notes.ListByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(task.CompletedBy)+len(notes))
	for _, c := range task.CompletedBy {
		ids = append(ids, c.UserID)
	}
	for _, n := range notes {
		ids = append(ids, n.CreatedBy)
	}

	identities, err := u.users.ListIdentities(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Identity, len(identities))
	for _, ident := range identities {
		byID[ident.ID] = ident
	}
	lookup := func(id string) domain.Identity {
		if ident, ok := byID[id]; ok {
			return ident
		}
		return domain.Identity{ID: id}
	}

	details := &TaskDetails{
		Task:        task,
		CompletedBy: make([]StatusEntry, len(task.CompletedBy)),
		Notes:       make([]NoteEntry, len(notes)),
	}
	for i, c := range task.CompletedBy {
		details.CompletedBy[i] = StatusEntry{User: lookup(c.UserID), Status: c.Status, ChangedAt: c.ChangedAt}
	}
	for i, n := range notes {
		details.Notes[i] = NoteEntry{Note: n, CreatedBy: lookup(n.CreatedBy)}
	}
	return details, nil
}

func (u *TaskUsecase) Update(ctx context.Context, task *domain.Task, in TaskInput) error {
	task.Name = in.Name
	task.Description = in.Description
	return u.tasks.Update(ctx, task)
}

// Delete removes the task (and, by cascade, its notes) and drops it from the project's list.
func (u *TaskUsecase) Delete(ctx context.Context, project *domain.Project, task *domain.Task) error {
	return bestEffort(ctx, u.logger,
		write{op: "delete task", fn: func(ctx context.Context) error { return u.tasks.Delete(ctx, task.ID) }},
		write{op: "remove task", fn: func(ctx context.Context) error { return u.projects.RemoveTask(ctx, project.ID, task.ID) }},
	)
}

// UpdateStatus sets the status and appends an entry to the history, even when the status is unchanged.
func (u *TaskUsecase) UpdateStatus(ctx context.Context, task *domain.Task, userID string, status domain.TaskStatus) error {
	if !status.Valid() {
		return domain.ErrInvalidStatus
	}

	change := domain.StatusChange{UserID: userID, Status: status, ChangedAt: u.now()}
	if err := u.tasks.RecordStatus(ctx, task.ID, change); err != nil {
		return err
	}
	task.Status = status
	task.CompletedBy = append(task.CompletedBy, change)
	return nil
}
