package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type noteUsecaser interface {
	Create(ctx context.Context, task *domain.Task, authorID, content string) (*domain.Note, error)
	List(ctx context.Context, task *domain.Task) ([]*domain.Note, error)
	Delete(ctx context.Context, task *domain.Task, note *domain.Note) error
}

type NoteHandler struct {
	notes  noteUsecaser
	logger *slog.Logger
}

func NewNoteHandler(notes noteUsecaser, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, logger: logger.With("component", "note_handler")}
}

type noteRequest struct {
	Content string `json:"content" binding:"required"`
}

// POST /projects/:projectId/tasks/:taskId/notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}
	scope := middleware.ScopeFrom(c)
	if _, err := h.notes.Create(c.Request.Context(), scope.Task, scope.Identity.ID, req.Content); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Nota creada correctamente")
}

// GET /projects/:projectId/tasks/:taskId/notes
func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.notes.List(c.Request.Context(), middleware.ScopeFrom(c).Task)
	if err != nil {
		AbortWithError(c, h.logger, err)
		return
	}

	out := make([]noteResponse, len(notes))
	for i, n := range notes {
		out[i] = toNoteResponse(n)
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /projects/:projectId/tasks/:taskId/notes/:noteId
func (h *NoteHandler) Delete(c *gin.Context) {
	scope := middleware.ScopeFrom(c)
	if err := h.notes.Delete(c.Request.Context(), scope.Task, scope.Note); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Nota eliminada")
}
