package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/transport/http/middleware"
	"github.com/ErlanBelekov/uptask/internal/usecase"
	"github.com/gin-gonic/gin"
)

type taskUsecaser interface {
	Create(ctx context.Context, project *domain.Project, in usecase.TaskInput) (*domain.Task, error)
	List(ctx context.Context, project *domain.Project) ([]*domain.Task, error)
	Get(ctx context.Context, task *domain.Task) (*usecase.TaskDetails, error)
	Update(ctx context.Context, task *domain.Task, in usecase.TaskInput) error
	Delete(ctx context.Context, project *domain.Project, task *domain.Task) error
	UpdateStatus(ctx context.Context, task *domain.Task, userID string, status domain.TaskStatus) error
}

type TaskHandler struct {
	tasks  taskUsecaser
	logger *slog.Logger
}

func NewTaskHandler(tasks taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger.With("component", "task_handler")}
}

type taskRequest struct {
	Name        string `json:"name"        binding:"required"`
	Description string `json:"description" binding:"required"`
}

func (r taskRequest) input() usecase.TaskInput {
	return usecase.TaskInput{Name: r.Name, Description: r.Description}
}

type statusRequest struct {
	Status domain.TaskStatus `json:"status" binding:"required"`
}

// POST /projects/:projectId/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.tasks.Create(c.Request.Context(), middleware.ScopeFrom(c).Project, req.input()); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Tarea creada correctamente")
}

// GET /projects/:projectId/tasks
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), middleware.ScopeFrom(c).Project)
	if err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// GET /projects/:projectId/tasks/:taskId
func (h *TaskHandler) Get(c *gin.Context) {
	details, err := h.tasks.Get(c.Request.Context(), middleware.ScopeFrom(c).Task)
	if err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toTaskDetailResponse(details))
}

// PUT /projects/:projectId/tasks/:taskId
func (h *TaskHandler) Update(c *gin.Context) {
	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.tasks.Update(c.Request.Context(), middleware.ScopeFrom(c).Task, req.input()); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Tarea actualizada")
}

// DELETE /projects/:projectId/tasks/:taskId
func (h *TaskHandler) Delete(c *gin.Context) {
	scope := middleware.ScopeFrom(c)
	if err := h.tasks.Delete(c.Request.Context(), scope.Project, scope.Task); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Tarea eliminada")
}

// POST /projects/:projectId/tasks/:taskId/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	scope := middleware.ScopeFrom(c)
	if err := h.tasks.UpdateStatus(c.Request.Context(), scope.Task, scope.Identity.ID, req.Status); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Tarea actualizada")
}
