package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	errInternalServer = "Hubo un error"
	errInvalidBody    = "Datos no válidos"
	errInvalidAction  = "Acción no válida"
)

type errorKind struct {
	status  int
	message string
}

// errorKinds maps every domain error a client may see to its status and message.
// Anything not listed is a 500 with errInternalServer.
var errorKinds = []struct {
	err  error
	kind errorKind
}{
	{domain.ErrUserNotFound, errorKind{http.StatusNotFound, "Usuario no encontrado"}},
	{domain.ErrNotRegistered, errorKind{http.StatusNotFound, "El usuario no está registrado"}},
	{domain.ErrEmailTaken, errorKind{http.StatusConflict, "Ya existe una cuenta con este correo electrónico"}},
	{domain.ErrEmailInUse, errorKind{http.StatusConflict, "Ya existe un usuario registrado con ese email"}},
	{domain.ErrTokenInvalid, errorKind{http.StatusNotFound, "Token no válido"}},
	{domain.ErrAccountUnconfirmed, errorKind{http.StatusUnauthorized, "La cuenta no ha sido confirmada, hemos enviado un email de confirmación"}},
	{domain.ErrAlreadyConfirmed, errorKind{http.StatusForbidden, "El usuario ya está confirmado"}},
	{domain.ErrWrongPassword, errorKind{http.StatusUnauthorized, "Contraseña incorrecta"}},
	{domain.ErrWrongCurrentPassword, errorKind{http.StatusUnauthorized, "La contraseña actual es incorrecta"}},
	{domain.ErrPasswordMismatch, errorKind{http.StatusUnauthorized, "La contraseña es incorrecta"}},

	{domain.ErrInvalidID, errorKind{http.StatusBadRequest, "Id no válido"}},
	{domain.ErrProjectNotFound, errorKind{http.StatusNotFound, "Proyecto no encontrado"}},
	{domain.ErrTaskNotFound, errorKind{http.StatusNotFound, "Tarea no encontrada"}},
	{domain.ErrNoteNotFound, errorKind{http.StatusNotFound, "Nota no encontrada"}},
	{domain.ErrInvalidAction, errorKind{http.StatusBadRequest, errInvalidAction}},
	{domain.ErrForbidden, errorKind{http.StatusForbidden, errInvalidAction}},
	{domain.ErrNotAuthor, errorKind{http.StatusUnauthorized, errInvalidAction}},
	{domain.ErrAlreadyMember, errorKind{http.StatusConflict, "El usuario ya es colaborador del proyecto"}},
	{domain.ErrNotMember, errorKind{http.StatusConflict, "El usuario no es colaborador del proyecto"}},
	{domain.ErrInvalidStatus, errorKind{http.StatusBadRequest, "Estado no válido"}},
}

func classify(err error) (errorKind, bool) {
	for _, e := range errorKinds {
		if errors.Is(err, e.err) {
			return e.kind, true
		}
	}
	return errorKind{http.StatusInternalServerError, errInternalServer}, false
}

// AbortWithError writes err as {"error": msg} and stops the chain.
// Unexpected errors are logged and answered with a generic 500.
func AbortWithError(c *gin.Context, logger *slog.Logger, err error) {
	kind, known := classify(err)
	if !known {
		logger.ErrorContext(c.Request.Context(), "unexpected error",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(kind.status, gin.H{"error": kind.message})
}

type fieldError struct {
	Path string `json:"path"`
	Msg  string `json:"msg"`
}

// fieldMessages holds the user-facing message for a failed binding tag, keyed by "jsonField.tag".
var fieldMessages = map[string]string{
	"name.required":                 "El nombre no puede ir vacío",
	"email.required":                "El email es obligatorio",
	"email.email":                   "Email no válido",
	"password.required":             "El password es obligatorio",
	"password.min":                  "El password es muy corto, mínimo 8 caracteres",
	"password_confirmation.eqfield": "Los password no son iguales",
	"current_password.required":     "El password actual no puede ir vacío",
	"token.required":                "El token no puede ir vacío",
	"projectName.required":          "El nombre del proyecto es obligatorio",
	"clientName.required":           "El nombre del cliente es obligatorio",
	"description.required":          "La descripción es obligatoria",
	"status.required":               "El estado es obligatorio",
	"id.required":                   "ID no válido",
	"id.uuid":                       "ID no válido",
	"content.required":              "El contenido de la nota es obligatorio",
}

// bindJSON decodes the body into req. On failure it writes 400 {"errors": [...]} and returns false.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Msg: errInvalidBody}}})
		return false
	}

	out := make([]fieldError, len(verrs))
	for i, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " no válido"
		}
		out[i] = fieldError{Path: fe.Field(), Msg: msg}
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": out})
	return false
}

var jsonNamesOnce sync.Once

// UseJSONFieldNames makes binding errors report the json field name instead of the Go one.
func UseJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
