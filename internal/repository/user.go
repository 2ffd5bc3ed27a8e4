package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/uptask/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches on the lower-cased address.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindIdentity loads only {id, name, email}.
	FindIdentity(ctx context.Context, id string) (domain.Identity, error)
	// ListIdentities returns the identities that exist among ids, in no particular order.
	ListIdentities(ctx context.Context, ids []string) ([]domain.Identity, error)
	// Update persists name, email, password and confirmed.
	Update(ctx context.Context, user *domain.User) error
}

type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	FindByToken(ctx context.Context, token string) (*domain.Token, error)
	Delete(ctx context.Context, id string) error
	// DeleteIssuedBefore removes every token created before cutoff and reports how many went.
	DeleteIssuedBefore(ctx context.Context, cutoff time.Time) (int, error)
}
