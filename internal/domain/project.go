package domain

import (
	"errors"
	"slices"
	"time"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidAction   = errors.New("invalid action")
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyMember   = errors.New("user is already a team member")
	ErrNotMember       = errors.New("user is not a team member")
)

type Project struct {
	ID          string
	ProjectName string
	ClientName  string
	Description string
	ManagerID   string
	Team        []string // user ids
	Tasks       []string // task ids, creation order
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Project) IsManager(userID string) bool {
	return p.ManagerID == userID
}

func (p *Project) HasMember(userID string) bool {
	return slices.Contains(p.Team, userID)
}

// CanView reports whether userID may read the project: its manager or anyone on the team.
func (p *Project) CanView(userID string) bool {
	return p.IsManager(userID) || p.HasMember(userID)
}
