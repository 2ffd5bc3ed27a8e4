package usecase

import (
	"context"

	"github.com/ErlanBelekov/uptask/internal/email"
)

// PasswordHasher is satisfied by credential.Bcrypt.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

// TokenSigner is satisfied by *credential.JWT.
type TokenSigner interface {
	Sign(userID string) (string, error)
}

// Mailer is satisfied by *email.Dispatcher. Dispatch must not block on delivery.
type Mailer interface {
	Dispatch(ctx context.Context, kind email.Kind, to email.Recipient)
}
