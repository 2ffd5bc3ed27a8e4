package usecase

import (
	"context"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/repository"
)

type TeamUsecase struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
}

func NewTeamUsecase(projects repository.ProjectRepository, users repository.UserRepository) *TeamUsecase {
	return &TeamUsecase{projects: projects, users: users}
}

func (u *TeamUsecase) FindMemberByEmail(ctx context.Context, addr string) (domain.Identity, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(addr))
	if err != nil {
		return domain.Identity{}, err
	}
	return user.Identity(), nil
}

// Add puts userID on the project's team. The store re-checks membership, so a
// concurrent add of the same user still ends in ErrAlreadyMember.
func (u *TeamUsecase) Add(ctx context.Context, project *domain.Project, userID string) error {
	if _, err := u.users.FindIdentity(ctx, userID); err != nil {
		return err
	}
	if project.HasMember(userID) {
		return domain.ErrAlreadyMember
	}
	if err := u.projects.AddMember(ctx, project.ID, userID); err != nil {
		return err
	}
	project.Team = append(project.Team, userID)
	return nil
}

// List returns the team's identities in team order. Ids that no longer resolve are skipped.
func (u *TeamUsecase) List(ctx context.Context, project *domain.Project) ([]domain.Identity, error) {
	identities, err := u.users.ListIdentities(ctx, project.Team)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Identity, len(identities))
	for _, ident := range identities {
		byID[ident.ID] = ident
	}

	team := make([]domain.Identity, 0, len(project.Team))
	for _, id := range project.Team {
		if ident, ok := byID[id]; ok {
			team = append(team, ident)
		}
	}
	return team, nil
}

func (u *TeamUsecase) Remove(ctx context.Context, project *domain.Project, userID string) error {
	if !project.HasMember(userID) {
		return domain.ErrNotMember
	}
	return u.projects.RemoveMember(ctx, project.ID, userID)
}
