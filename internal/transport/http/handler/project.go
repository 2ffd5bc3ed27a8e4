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

type projectUsecaser interface {
	Create(ctx context.Context, managerID string, in usecase.ProjectInput) (*domain.Project, error)
	List(ctx context.Context, userID string) ([]*domain.Project, error)
	Get(ctx context.Context, project *domain.Project) (*usecase.ProjectDetails, error)
	Update(ctx context.Context, project *domain.Project, in usecase.ProjectInput) error
	Delete(ctx context.Context, project *domain.Project) error
}

// ProjectHandler serves /projects. Routes with :projectId run after a resolver
// pipeline, so the project is already loaded and authorized.
type ProjectHandler struct {
	projects projectUsecaser
	logger   *slog.Logger
}

func NewProjectHandler(projects projectUsecaser, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger.With("component", "project_handler")}
}

type projectRequest struct {
	ProjectName string `json:"projectName" binding:"required"`
	ClientName  string `json:"clientName"  binding:"required"`
	Description string `json:"description" binding:"required"`
}

func (r projectRequest) input() usecase.ProjectInput {
	return usecase.ProjectInput{ProjectName: r.ProjectName, ClientName: r.ClientName, Description: r.Description}
}

// POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}
	me := middleware.IdentityFrom(c)
	if _, err := h.projects.Create(c.Request.Context(), me.ID, req.input()); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Proyecto creado correctamente")
}

// GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	me := middleware.IdentityFrom(c)
	projects, err := h.projects.List(c.Request.Context(), me.ID)
	if err != nil {
		AbortWithError(c, h.logger, err)
		return
	}

	out := make([]projectResponse, len(projects))
	for i, p := range projects {
		out[i] = toProjectResponse(p)
	}
	c.JSON(http.StatusOK, out)
}

// GET /projects/:projectId
func (h *ProjectHandler) Get(c *gin.Context) {
	details, err := h.projects.Get(c.Request.Context(), middleware.ScopeFrom(c).Project)
	if err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProjectDetailResponse(details))
}

// PUT /projects/:projectId
func (h *ProjectHandler) Update(c *gin.Context) {
	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.projects.Update(c.Request.Context(), middleware.ScopeFrom(c).Project, req.input()); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Proyecto actualizado")
}

// DELETE /projects/:projectId
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), middleware.ScopeFrom(c).Project); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Proyecto eliminado")
}
