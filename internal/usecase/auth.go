package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ErlanBelekov/uptask/internal/credential"
	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/email"
	"github.com/ErlanBelekov/uptask/internal/metrics"
	"github.com/ErlanBelekov/uptask/internal/repository"
	"github.com/google/uuid"
)

type AuthUsecase struct {
	users    repository.UserRepository
	tokens   repository.TokenRepository
	hasher   PasswordHasher
	signer   TokenSigner
	mailer   Mailer
	logger   *slog.Logger
	tokenTTL time.Duration
	now      func() time.Time
	newCode  func() (string, error)
}

func NewAuthUsecase(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	hasher PasswordHasher,
	signer TokenSigner,
	mailer Mailer,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		signer:   signer,
		mailer:   mailer,
		logger:   logger.With("component", "auth_usecase"),
		tokenTTL: domain.TokenTTL,
		now:      time.Now,
		newCode:  credential.NewCode,
	}
}

// WithTokenTTL overrides how long confirmation and reset tokens stay valid.
func (u *AuthUsecase) WithTokenTTL(ttl time.Duration) *AuthUsecase {
	u.tokenTTL = ttl
	return u
}

type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
}

// CreateAccount stores an unconfirmed user with a hashed password and emails a confirmation code.
func (u *AuthUsecase) CreateAccount(ctx context.Context, in CreateAccountInput) error {
	addr := normalizeEmail(in.Email)

	_, err := u.users.FindByEmail(ctx, addr)
	if err == nil {
		return domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("find user: %w", err)
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return err
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Email:    addr,
		Password: hash,
	}
	token, err := u.newToken(user.ID)
	if err != nil {
		return err
	}

	err = bestEffort(ctx, u.logger,
		write{op: "create user", fn: func(ctx context.Context) error { return u.users.Create(ctx, user) }},
		write{op: "create token", fn: func(ctx context.Context) error { return u.tokens.Create(ctx, token) }},
	)
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	u.mailer.Dispatch(ctx, email.KindConfirmation, recipient(user, token))
	return nil
}

// ConfirmAccount marks the code's owner confirmed and consumes the code.
func (u *AuthUsecase) ConfirmAccount(ctx context.Context, code string) error {
	token, err := u.validToken(ctx, code)
	if err != nil {
		return err
	}

	user, err := u.users.FindByID(ctx, token.UserID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	user.Confirmed = true

	return bestEffort(ctx, u.logger,
		write{op: "confirm user", fn: func(ctx context.Context) error { return u.users.Update(ctx, user) }},
		write{op: "delete token", fn: func(ctx context.Context) error { return u.tokens.Delete(ctx, token.ID) }},
	)
}

// Login returns a signed JWT. An unconfirmed account gets a fresh
// confirmation code and ErrAccountUnconfirmed instead.
func (u *AuthUsecase) Login(ctx context.Context, addr, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(addr))
	if err != nil {
		return "", err
	}

	if !user.Confirmed {
		if err := u.issue(ctx, user, email.KindConfirmation); err != nil {
			return "", err
		}
		return "", domain.ErrAccountUnconfirmed
	}

	ok, err := u.hasher.Verify(password, user.Password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrWrongPassword
	}

	return u.signer.Sign(user.ID)
}

// RequestConfirmationCode re-sends a confirmation code to an unconfirmed account.
func (u *AuthUsecase) RequestConfirmationCode(ctx context.Context, addr string) error {
	user, err := u.registeredUser(ctx, addr)
	if err != nil {
		return err
	}
	if user.Confirmed {
		return domain.ErrAlreadyConfirmed
	}
	return u.issue(ctx, user, email.KindConfirmation)
}

func (u *AuthUsecase) ForgotPassword(ctx context.Context, addr string) error {
	user, err := u.registeredUser(ctx, addr)
	if err != nil {
		return err
	}
	return u.issue(ctx, user, email.KindPasswordReset)
}

// ValidateToken reports whether code is a live token without consuming it.
func (u *AuthUsecase) ValidateToken(ctx context.Context, code string) error {
	_, err := u.validToken(ctx, code)
	return err
}

// UpdatePasswordWithToken sets a new password for the code's owner and consumes the code.
func (u *AuthUsecase) UpdatePasswordWithToken(ctx context.Context, code, password string) error {
	token, err := u.validToken(ctx, code)
	if err != nil {
		return err
	}

	user, err := u.users.FindByID(ctx, token.UserID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user.Password, err = u.hasher.Hash(password); err != nil {
		return err
	}

	return bestEffort(ctx, u.logger,
		write{op: "update password", fn: func(ctx context.Context) error { return u.users.Update(ctx, user) }},
		write{op: "delete token", fn: func(ctx context.Context) error { return u.tokens.Delete(ctx, token.ID) }},
	)
}

// validToken loads code and enforces the expiry window. Expired codes are deleted on sight.
func (u *AuthUsecase) validToken(ctx context.Context, code string) (*domain.Token, error) {
	token, err := u.tokens.FindByToken(ctx, code)
	if err != nil {
		return nil, err
	}
	if token.Expired(u.now(), u.tokenTTL) {
		if err := u.tokens.Delete(ctx, token.ID); err != nil {
			u.logger.WarnContext(ctx, "delete expired token", "token_id", token.ID, "error", err)
		}
		return nil, domain.ErrTokenInvalid
	}
	return token, nil
}

func (u *AuthUsecase) registeredUser(ctx context.Context, addr string) (*domain.User, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(addr))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrNotRegistered
	}
	return user, err
}

// issue persists exactly one new token for user and emails it.
func (u *AuthUsecase) issue(ctx context.Context, user *domain.User, kind email.Kind) error {
	token, err := u.newToken(user.ID)
	if err != nil {
		return err
	}
	if err := u.tokens.Create(ctx, token); err != nil {
		return err
	}
	u.mailer.Dispatch(ctx, kind, recipient(user, token))
	return nil
}

func (u *AuthUsecase) newToken(userID string) (*domain.Token, error) {
	code, err := u.newCode()
	if err != nil {
		return nil, err
	}
	return &domain.Token{
		ID:        uuid.NewString(),
		Token:     code,
		UserID:    userID,
		CreatedAt: u.now(),
	}, nil
}

func recipient(user *domain.User, token *domain.Token) email.Recipient {
	return email.Recipient{Email: user.Email, Name: user.Name, Token: token.Token}
}

func normalizeEmail(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}
