package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/repository"
)

// ProfileUsecase lets an authenticated user manage their own account.
type ProfileUsecase struct {
	users  repository.UserRepository
	hasher PasswordHasher
}

func NewProfileUsecase(users repository.UserRepository, hasher PasswordHasher) *ProfileUsecase {
	return &ProfileUsecase{users: users, hasher: hasher}
}

func (u *ProfileUsecase) UpdateProfile(ctx context.Context, userID, name, addr string) error {
	addr = normalizeEmail(addr)

	owner, err := u.users.FindByEmail(ctx, addr)
	switch {
	case err == nil && owner.ID != userID:
		return domain.ErrEmailInUse
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return fmt.Errorf("find user by email: %w", err)
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Name = name
	user.Email = addr

	if err := u.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return domain.ErrEmailInUse
		}
		return err
	}
	return nil
}

func (u *ProfileUsecase) UpdatePassword(ctx context.Context, userID, current, password string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := u.hasher.Verify(current, user.Password)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrWrongCurrentPassword
	}

	if user.Password, err = u.hasher.Hash(password); err != nil {
		return err
	}
	return u.users.Update(ctx, user)
}

// CheckPassword confirms the caller knows their password before a sensitive action.
func (u *ProfileUsecase) CheckPassword(ctx context.Context, userID, password string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := u.hasher.Verify(password, user.Password)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPasswordMismatch
	}
	return nil
}
