package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/uptask/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	CreateAccount(ctx context.Context, in usecase.CreateAccountInput) error
	ConfirmAccount(ctx context.Context, code string) error
	Login(ctx context.Context, email, password string) (string, error)
	RequestConfirmationCode(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ValidateToken(ctx context.Context, code string) error
	UpdatePasswordWithToken(ctx context.Context, code, password string) error
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	Name                 string `json:"name"                  binding:"required"`
	Email                string `json:"email"                 binding:"required,email"`
	Password             string `json:"password"              binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

type tokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type newPasswordRequest struct {
	Password             string `json:"password"              binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.authUsecase.CreateAccount(c.Request.Context(), usecase.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Cuenta creada, revisa tu email para confirmarla")
}

// POST /auth/confirm-account
func (h *AuthHandler) ConfirmAccount(c *gin.Context) {
	var req tokenRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.authUsecase.ConfirmAccount(c.Request.Context(), req.Token); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Cuenta confirmada correctamente")
}

// POST /auth/login
// Returns the JWT as a bare JSON string.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// POST /auth/request-code
func (h *AuthHandler) RequestCode(c *gin.Context) {
	var req emailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.authUsecase.RequestConfirmationCode(c.Request.Context(), req.Email); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Se envió un nuevo token a tu email")
}

// POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.authUsecase.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Revisa tu email para instrucciones")
}

// POST /auth/validate-token
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	var req tokenRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.authUsecase.ValidateToken(c.Request.Context(), req.Token); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "Token válido, escribe tu nueva contraseña")
}

// POST /auth/update-password/:token
func (h *AuthHandler) UpdatePasswordWithToken(c *gin.Context) {
	var req newPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.authUsecase.UpdatePasswordWithToken(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		AbortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, "La contraseña se modificó correctamente")
}
