package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/uptask/internal/domain"
	ctxlog "github.com/ErlanBelekov/uptask/internal/log"
	"github.com/gin-gonic/gin"
)

const (
	errUnauthorized = "No autorizado"
	errTokenInvalid = "Token no válido"

	identityKey = "identity"
)

// TokenVerifier is satisfied by *credential.JWT. It returns the token's subject.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// IdentityFinder is satisfied by every repository.UserRepository.
type IdentityFinder interface {
	FindIdentity(ctx context.Context, id string) (domain.Identity, error)
}

// Authenticate validates a Bearer JWT, loads the caller's identity and stores
// it in the gin context. It never modifies the user.
func Authenticate(verifier TokenVerifier, users IdentityFinder, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "authenticate")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		scheme, rawToken, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || rawToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		userID, err := verifier.Verify(rawToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errTokenInvalid})
			return
		}

		ctx := c.Request.Context()
		identity, err := users.FindIdentity(ctx, userID)
		if err != nil {
			// A valid signature for a user that does not exist means our own state is inconsistent.
			if errors.Is(err, domain.ErrUserNotFound) {
				logger.WarnContext(ctx, "token subject not found", "sub", userID)
			} else {
				logger.ErrorContext(ctx, "load identity", "sub", userID, "error", err)
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errTokenInvalid})
			return
		}

		SetIdentity(c, identity)
		c.Request = c.Request.WithContext(ctxlog.WithUserID(ctx, identity.ID))
		c.Next()
	}
}

// SetIdentity attaches identity to the request.
func SetIdentity(c *gin.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(c *gin.Context) domain.Identity {
	identity, _ := c.Get(identityKey)
	v, _ := identity.(domain.Identity)
	return v
}
