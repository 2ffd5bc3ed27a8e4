package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type teamUsecaser interface {
	FindMemberByEmail(ctx context.Context, email string) (domain.Identity, error)
	Add(ctx context.Context, project *domain.Project, userID string) error
	List(ctx context.Context, project *domain.Project) ([]domain.Identity, error)
	Remove(ctx context.Context, project *domain.Project, userID string) error
}

type TeamHandler struct {
	team   teamUsecaser
	logger *slog.Logger
}

func NewTeamHandler(team teamUsecaser, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{team: team, logger: logger.With("component", "team_handler")}
}

type addMemberRequest struct {
	ID string `json:"id" binding:"required,uuid"`
}

// POST /projects/:projectId/team/find
func (h *TeamHandler) Find(c *gin.Context) {
	var req emailRequest
	if !bindJSON(c, &req) {
		return
	}
	member, err := h.team.FindMemberByEmail(c.Request.Context(), req.Email)
	if err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// POST /projects/:projectId/team
func (h *TeamHandler) Add(c *gin.Context) {
	var req addMemberRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.team.Add(c.Request.Context(), middleware.ScopeFrom(c).Project, req.ID); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Colaborador agregado corrrectamente")
}

// GET /projects/:projectId/team
func (h *TeamHandler) List(c *gin.Context) {
	members, err := h.team.List(c.Request.Context(), middleware.ScopeFrom(c).Project)
	if err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	if members == nil {
		members = []domain.Identity{}
	}
	c.JSON(http.StatusOK, members)
}

// DELETE /projects/:projectId/team/:userId
func (h *TeamHandler) Remove(c *gin.Context) {
	userID := c.Param("userId")
	if _, err := uuid.Parse(userID); err != nil {
		AbortWithError(c, h.logger, domain.ErrInvalidID)
		return
	}
	if err := h.team.Remove(c.Request.Context(), middleware.ScopeFrom(c).Project, userID); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Se ha eliminado al colaborador del proyecto")
}
