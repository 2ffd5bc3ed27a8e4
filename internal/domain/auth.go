package domain

import (
	"errors"
	"time"
)

// TokenTTL is how long a confirmation or password-reset token stays valid.
const TokenTTL = 10 * time.Minute

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrNotRegistered        = errors.New("user is not registered")
	ErrEmailTaken           = errors.New("email already registered")
	ErrEmailInUse           = errors.New("email belongs to another user")
	ErrTokenInvalid         = errors.New("token is invalid or expired")
	ErrAccountUnconfirmed   = errors.New("account is not confirmed")
	ErrAlreadyConfirmed     = errors.New("account is already confirmed")
	ErrWrongPassword        = errors.New("wrong password")
	ErrWrongCurrentPassword = errors.New("wrong current password")
	ErrPasswordMismatch     = errors.New("password does not match")
)

type User struct {
	ID        string
	Name      string
	Email     string
	Password  string // bcrypt hash
	Confirmed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity returns the projection attached to authenticated requests.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Identity is the minimal view of a user: no password, no flags.
type Identity struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Token is a one-shot credential used to confirm an account or reset a password.
type Token struct {
	ID        string
	Token     string
	UserID    string
	CreatedAt time.Time
}

// Expired reports whether the token was issued more than ttl before now.
func (t *Token) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(t.CreatedAt) > ttl
}
