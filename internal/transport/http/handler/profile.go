package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/uptask/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type profileUsecaser interface {
	UpdateProfile(ctx context.Context, userID, name, email string) error
	UpdatePassword(ctx context.Context, userID, current, password string) error
	CheckPassword(ctx context.Context, userID, password string) error
}

// ProfileHandler serves the caller's own account. Every route runs after Authenticate.
type ProfileHandler struct {
	profiles profileUsecaser
	logger   *slog.Logger
}

func NewProfileHandler(profiles profileUsecaser, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger.With("component", "profile_handler")}
}

type updateProfileRequest struct {
	Name  string `json:"name"  binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type updatePasswordRequest struct {
	CurrentPassword      string `json:"current_password"      binding:"required"`
	Password             string `json:"password"              binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

type checkPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// GET /auth/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.IdentityFrom(c))
}

// PUT /auth/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	me := middleware.IdentityFrom(c)
	if err := h.profiles.UpdateProfile(c.Request.Context(), me.ID, req.Name, req.Email); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Perfil actualizado")
}

// POST /auth/profile/password
func (h *ProfileHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	me := middleware.IdentityFrom(c)
	if err := h.profiles.UpdatePassword(c.Request.Context(), me.ID, req.CurrentPassword, req.Password); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "La contraseña se modificó correctamente")
}

// POST /auth/profile/check-password
func (h *ProfileHandler) CheckPassword(c *gin.Context) {
	var req checkPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	me := middleware.IdentityFrom(c)
	if err := h.profiles.CheckPassword(c.Request.Context(), me.ID, req.Password); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Contraseña correcta")
}
