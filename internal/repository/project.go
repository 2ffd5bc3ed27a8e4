package repository

import (
	"context"

	"github.com/ErlanBelekov/uptask/internal/domain"
)

// ProjectRepository stores projects together with their team and task id lists.
// The list mutators are single-document updates so callers can pair them with
// writes on other collections without a transaction.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// ListVisibleTo returns projects managed by userID or whose team contains it.
	ListVisibleTo(ctx context.Context, userID string) ([]*domain.Project, error)
	// Update persists projectName, clientName and description. The manager is never written.
	Update(ctx context.Context, project *domain.Project) error
	// Delete removes the project, its tasks and their notes.
	Delete(ctx context.Context, id string) error

	AppendTask(ctx context.Context, projectID, taskID string) error
	RemoveTask(ctx context.Context, projectID, taskID string) error

	// AddMember returns domain.ErrAlreadyMember when userID is already on the team.
	AddMember(ctx context.Context, projectID, userID string) error
	// RemoveMember returns domain.ErrNotMember when userID is not on the team.
	RemoveMember(ctx context.Context, projectID, userID string) error
}
