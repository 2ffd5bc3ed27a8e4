package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/google/uuid"
)

type ProjectFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Project, error)
}

type TaskFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Task, error)
}

type NoteFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Note, error)
}

// pathID reads and validates an id parameter.
func pathID(p Params, name string) (string, bool) {
	id := p.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// loadErr passes notFound through unchanged and wraps anything else as a store failure.
func loadErr(entity string, err, notFound error) error {
	if errors.Is(err, notFound) {
		return notFound
	}
	return fmt.Errorf("load %s: %w", entity, err)
}

const projectStageName = "project"

func projectStage(projects ProjectFinder, param string) Stage {
	return Stage{
		Name: projectStageName,
		Run: func(ctx context.Context, p Params, s Scope) Result {
			id, ok := pathID(p, param)
			if !ok {
				return Reject(domain.ErrInvalidID)
			}
			project, err := projects.FindByID(ctx, id)
			if err != nil {
				return Reject(loadErr("project", err, domain.ErrProjectNotFound))
			}
			s.Project = project
			return Continue(s)
		},
	}
}

func taskStage(tasks TaskFinder, param string) Stage {
	return Stage{
		Name: "task",
		Run: func(ctx context.Context, p Params, s Scope) Result {
			id, ok := pathID(p, param)
			if !ok {
				return Reject(domain.ErrInvalidID)
			}
			task, err := tasks.FindByID(ctx, id)
			if err != nil {
				return Reject(loadErr("task", err, domain.ErrTaskNotFound))
			}
			s.Task = task
			return Continue(s)
		},
	}
}

// taskInProject rejects a task that lives under a different project than the one in the path.
var taskInProject = Stage{
	Name: "task_in_project",
	Run: func(_ context.Context, _ Params, s Scope) Result {
		if !s.Task.BelongsTo(s.Project.ID) {
			return Reject(domain.ErrInvalidAction)
		}
		return Continue(s)
	},
}

func noteStage(notes NoteFinder, param string) Stage {
	return Stage{
		Name: "note",
		Run: func(ctx context.Context, p Params, s Scope) Result {
			id, ok := pathID(p, param)
			if !ok {
				return Reject(domain.ErrInvalidID)
			}
			note, err := notes.FindByID(ctx, id)
			if err != nil {
				return Reject(loadErr("note", err, domain.ErrNoteNotFound))
			}
			s.Note = note
			return Continue(s)
		},
	}
}

var noteInTask = Stage{
	Name: "note_in_task",
	Run: func(_ context.Context, _ Params, s Scope) Result {
		if s.Note.TaskID != s.Task.ID {
			return Reject(domain.ErrInvalidAction)
		}
		return Continue(s)
	},
}

// ---- gates ----

var managerGate = Stage{
	Name: "manager",
	Run: func(_ context.Context, _ Params, s Scope) Result {
		if !s.Project.IsManager(s.Identity.ID) {
			return Reject(domain.ErrInvalidAction)
		}
		return Continue(s)
	},
}

var memberGate = Stage{
	Name: "member",
	Run: func(_ context.Context, _ Params, s Scope) Result {
		if !s.Project.CanView(s.Identity.ID) {
			return Reject(domain.ErrForbidden)
		}
		return Continue(s)
	},
}

var noteAuthorGate = Stage{
	Name: "note_author",
	Run: func(_ context.Context, _ Params, s Scope) Result {
		if !s.Note.CanDelete(s.Identity.ID, s.Project) {
			return Reject(domain.ErrNotAuthor)
		}
		return Continue(s)
	},
}
