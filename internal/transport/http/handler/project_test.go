package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ErlanBelekov/uptask/internal/access"
	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/transport/http/handler"
	"github.com/ErlanBelekov/uptask/internal/transport/http/middleware"
	"github.com/ErlanBelekov/uptask/internal/usecase"
	"github.com/gin-gonic/gin"
)

type fakeProjectUsecase struct {
	create func(ctx context.Context, managerID string, in usecase.ProjectInput) (*domain.Project, error)
	list   func(ctx context.Context, userID string) ([]*domain.Project, error)
	get    func(ctx context.Context, p *domain.Project) (*usecase.ProjectDetails, error)
	update func(ctx context.Context, p *domain.Project, in usecase.ProjectInput) error
	delete func(ctx context.Context, p *domain.Project) error
}

func (f *fakeProjectUsecase) Create(ctx context.Context, managerID string, in usecase.ProjectInput) (*domain.Project, error) {
	return f.create(ctx, managerID, in)
}

func (f *fakeProjectUsecase) List(ctx context.Context, userID string) ([]*domain.Project, error) {
	return f.list(ctx, userID)
}

func (f *fakeProjectUsecase) Get(ctx context.Context, p *domain.Project) (*usecase.ProjectDetails, error) {
	return f.get(ctx, p)
}

func (f *fakeProjectUsecase) Update(ctx context.Context, p *domain.Project, in usecase.ProjectInput) error {
	return f.update(ctx, p, in)
}

func (f *fakeProjectUsecase) Delete(ctx context.Context, p *domain.Project) error {
	return f.delete(ctx, p)
}

var caller = domain.Identity{ID: "user-1", Name: "Ana", Email: "ana@example.com"}

var scopedProject = &domain.Project{
	ID:          "proj-1",
	ProjectName: "Web",
	ClientName:  "ACME",
	Description: "Landing",
	ManagerID:   "user-1",
	CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
}

// withScope stands in for Authenticate and Resolve.
func withScope(scope access.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetIdentity(c, scope.Identity)
		middleware.SetScope(c, scope)
		c.Next()
	}
}

func newProjectRouter(uc *fakeProjectUsecase) *gin.Engine {
	h := handler.NewProjectHandler(uc, slog.Default())
	r := gin.New()
	r.Use(withScope(access.Scope{Identity: caller, Project: scopedProject}))
	r.POST("/projects", h.Create)
	r.GET("/projects", h.List)
	r.GET("/projects/:projectId", h.Get)
	r.DELETE("/projects/:projectId", h.Delete)
	return r
}

func TestProjectCreate_UsesCallerAsManager(t *testing.T) {
	var manager string
	uc := &fakeProjectUsecase{
		create: func(_ context.Context, managerID string, in usecase.ProjectInput) (*domain.Project, error) {
			manager = managerID
			return &domain.Project{ID: "p", ManagerID: managerID}, nil
		},
	}

	w := postJSON(newProjectRouter(uc), "/projects", map[string]string{
		"projectName": "Web", "clientName": "ACME", "description": "Landing",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if manager != caller.ID {
		t.Errorf("manager = %q", manager)
	}
	if msg := decode[string](t, w); msg != "Proyecto creado correctamente" {
		t.Errorf("message = %q", msg)
	}
}

func TestProjectCreate_MissingFields(t *testing.T) {
	w := postJSON(newProjectRouter(&fakeProjectUsecase{}), "/projects", map[string]string{"projectName": "Web"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decode[bindErrors](t, w)
	if len(body.Errors) != 2 {
		t.Fatalf("errors = %+v, want clientName and description", body.Errors)
	}
	if body.Errors[0].Msg != "El nombre del cliente es obligatorio" {
		t.Errorf("msg = %q", body.Errors[0].Msg)
	}
}

func TestProjectGet_EmbedsTasks(t *testing.T) {
	uc := &fakeProjectUsecase{
		get: func(_ context.Context, p *domain.Project) (*usecase.ProjectDetails, error) {
			return &usecase.ProjectDetails{
				Project: p,
				Tasks:   []*domain.Task{{ID: "t1", Name: "Logo", ProjectID: p.ID, Status: domain.TaskPending}},
			}, nil
		},
	}

	w := httptest.NewRecorder()
	newProjectRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/proj-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	body := decode[map[string]any](t, w)
	if body["_id"] != "proj-1" || body["manager"] != "user-1" {
		t.Errorf("body = %v", body)
	}
	tasks, ok := body["tasks"].([]any)
	if !ok || len(tasks) != 1 {
		t.Fatalf("tasks = %v", body["tasks"])
	}
	if task := tasks[0].(map[string]any); task["name"] != "Logo" || task["status"] != "pending" {
		t.Errorf("task = %v", task)
	}
}

func TestProjectList_EmptyIsArray(t *testing.T) {
	uc := &fakeProjectUsecase{
		list: func(context.Context, string) ([]*domain.Project, error) { return nil, nil },
	}

	w := httptest.NewRecorder()
	newProjectRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects", nil))
	if w.Body.String() != "[]" {
		t.Errorf("body = %s, want []", w.Body.String())
	}
}

func TestProjectDelete(t *testing.T) {
	var deleted *domain.Project
	uc := &fakeProjectUsecase{
		delete: func(_ context.Context, p *domain.Project) error { deleted = p; return nil },
	}

	w := httptest.NewRecorder()
	newProjectRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/projects/proj-1", nil))
	if w.Code != http.StatusOK || deleted != scopedProject {
		t.Fatalf("status = %d, deleted = %v", w.Code, deleted)
	}
}
