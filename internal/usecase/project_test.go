package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"testing"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/usecase"
)

func testProject() *domain.Project {
	return &domain.Project{
		ID:          "proj-1",
		ProjectName: "Web",
		ClientName:  "ACME",
		Description: "Landing page",
		ManagerID:   "manager-1",
		Team:        []string{"member-1"},
		Tasks:       []string{},
	}
}

// ---- projects ----

func TestProjectCreate_CallerBecomesManager(t *testing.T) {
	var saved *domain.Project
	projects := &fakeProjectRepo{
		create: func(_ context.Context, p *domain.Project) error { saved = p; return nil },
	}

	p, err := usecase.NewProjectUsecase(projects, &fakeTaskRepo{}).Create(context.Background(), "user-1", usecase.ProjectInput{
		ProjectName: "Web", ClientName: "ACME", Description: "Landing",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != p || p.ManagerID != "user-1" {
		t.Errorf("manager = %q, want user-1", p.ManagerID)
	}
	if len(p.Team) != 0 || len(p.Tasks) != 0 {
		t.Error("new project must have empty team and tasks")
	}
	if p.ID == "" {
		t.Error("id must be assigned before the write")
	}
}

func TestProjectUpdate_KeepsManager(t *testing.T) {
	var saved domain.Project
	projects := &fakeProjectRepo{
		update: func(_ context.Context, p *domain.Project) error { saved = *p; return nil },
	}
	project := testProject()

	err := usecase.NewProjectUsecase(projects, &fakeTaskRepo{}).Update(context.Background(), project, usecase.ProjectInput{
		ProjectName: "New", ClientName: "Client", Description: "Desc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ProjectName != "New" || saved.ClientName != "Client" || saved.Description != "Desc" {
		t.Errorf("saved %+v", saved)
	}
	if saved.ManagerID != "manager-1" {
		t.Errorf("manager changed to %q", saved.ManagerID)
	}
}

func TestProjectGet_IncludesTasks(t *testing.T) {
	tasks := &fakeTaskRepo{
		listByProject: func(_ context.Context, projectID string) ([]*domain.Task, error) {
			return []*domain.Task{{ID: "t1", ProjectID: projectID}, {ID: "t2", ProjectID: projectID}}, nil
		},
	}

	details, err := usecase.NewProjectUsecase(&fakeProjectRepo{}, tasks).Get(context.Background(), testProject())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(details.Tasks) != 2 || details.Tasks[0].ID != "t1" {
		t.Errorf("tasks = %+v", details.Tasks)
	}
}

// ---- tasks ----

func newTasks(projects *fakeProjectRepo, tasks *fakeTaskRepo, notes *fakeNoteRepo, users *fakeUserRepo) *usecase.TaskUsecase {
	return usecase.NewTaskUsecase(projects, tasks, notes, users, slog.Default())
}

func TestTaskCreate_AppendsToProject(t *testing.T) {
	var (
		mu       sync.Mutex
		created  *domain.Task
		appended string
	)
	tasks := &fakeTaskRepo{
		create: func(_ context.Context, task *domain.Task) error { mu.Lock(); created = task; mu.Unlock(); return nil },
	}
	projects := &fakeProjectRepo{
		appendTask: func(_ context.Context, _, taskID string) error { mu.Lock(); appended = taskID; mu.Unlock(); return nil },
	}
	project := testProject()

	task, err := newTasks(projects, tasks, &fakeNoteRepo{}, &fakeUserRepo{}).Create(context.Background(), project, usecase.TaskInput{Name: "Logo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != task || task.ProjectID != project.ID || task.Status != domain.TaskPending {
		t.Errorf("task = %+v", task)
	}
	if appended != task.ID {
		t.Errorf("appended %q, want %q", appended, task.ID)
	}
	if !slices.Contains(project.Tasks, task.ID) {
		t.Error("in-memory project should list the new task")
	}
}

func TestTaskDelete_RemovesFromProject(t *testing.T) {
	var deleted, removed string
	tasks := &fakeTaskRepo{delete: func(_ context.Context, id string) error { deleted = id; return nil }}
	projects := &fakeProjectRepo{removeTask: func(_ context.Context, _, taskID string) error { removed = taskID; return nil }}

	task := &domain.Task{ID: "task-1", ProjectID: "proj-1"}
	if err := newTasks(projects, tasks, &fakeNoteRepo{}, &fakeUserRepo{}).Delete(context.Background(), testProject(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "task-1" || removed != "task-1" {
		t.Errorf("deleted=%q removed=%q", deleted, removed)
	}
}

func TestTaskUpdateStatus_AppendsEveryChange(t *testing.T) {
	var recorded []domain.StatusChange
	tasks := &fakeTaskRepo{
		recordStatus: func(_ context.Context, _ string, c domain.StatusChange) error {
			recorded = append(recorded, c)
			return nil
		},
	}
	uc := newTasks(&fakeProjectRepo{}, tasks, &fakeNoteRepo{}, &fakeUserRepo{})
	task := &domain.Task{ID: "task-1", Status: domain.TaskPending}

	for range 2 {
		if err := uc.UpdateStatus(context.Background(), task, "member-1", domain.TaskCompleted); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(recorded) != 2 || len(task.CompletedBy) != 2 {
		t.Fatalf("recorded %d / in memory %d, want 2 each", len(recorded), len(task.CompletedBy))
	}
	if recorded[1].UserID != "member-1" || recorded[1].Status != domain.TaskCompleted {
		t.Errorf("entry = %+v", recorded[1])
	}
	if task.Status != domain.TaskCompleted {
		t.Errorf("status = %q", task.Status)
	}
}

func TestTaskUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	tasks := &fakeTaskRepo{
		recordStatus: func(context.Context, string, domain.StatusChange) error {
			t.Error("invalid status must not be written")
			return nil
		},
	}

	err := newTasks(&fakeProjectRepo{}, tasks, &fakeNoteRepo{}, &fakeUserRepo{}).
		UpdateStatus(context.Background(), &domain.Task{ID: "task-1"}, "u", domain.TaskStatus("done"))
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("got %v, want ErrInvalidStatus", err)
	}
}

func TestTaskGet_ExpandsUsers(t *testing.T) {
	task := &domain.Task{
		ID: "task-1",
		CompletedBy: []domain.StatusChange{
			{UserID: "u1", Status: domain.TaskInProgress},
			{UserID: "ghost", Status: domain.TaskCompleted},
		},
	}
	notes := &fakeNoteRepo{
		listByTask: func(_ context.Context, _ string) ([]*domain.Note, error) {
			return []*domain.Note{{ID: "n1", Content: "hi", CreatedBy: "u1", TaskID: "task-1"}}, nil
		},
	}
	users := &fakeUserRepo{
		listIdentities: func(_ context.Context, _ []string) ([]domain.Identity, error) {
			return []domain.Identity{{ID: "u1", Name: "Ana", Email: "ana@example.com"}}, nil
		},
	}

	details, err := newTasks(&fakeProjectRepo{}, &fakeTaskRepo{}, notes, users).Get(context.Background(), task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.CompletedBy[0].User.Name != "Ana" {
		t.Errorf("history[0] = %+v", details.CompletedBy[0])
	}
	if details.CompletedBy[1].User.ID != "ghost" {
		t.Errorf("unresolved user should keep its id, got %+v", details.CompletedBy[1])
	}
	if len(details.Notes) != 1 || details.Notes[0].CreatedBy.Email != "ana@example.com" {
		t.Errorf("notes = %+v", details.Notes)
	}
}
