package usecase

import (
	"context"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/repository"
	"github.com/google/uuid"
)

type ProjectUsecase struct {
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
}

func NewProjectUsecase(projects repository.ProjectRepository, tasks repository.TaskRepository) *ProjectUsecase {
	return &ProjectUsecase{projects: projects, tasks: tasks}
}

type ProjectInput struct {
	ProjectName string
	ClientName  string
	Description string
}

// Create makes managerID the manager of a new project with no team and no tasks.
func (u *ProjectUsecase) Create(ctx context.Context, managerID string, in ProjectInput) (*domain.Project, error) {
	p := &domain.Project{
		ID:          uuid.NewString(),
		ProjectName: in.ProjectName,
		ClientName:  in.ClientName,
		Description: in.Description,
		ManagerID:   managerID,
		Team:        []string{},
		Tasks:       []string{},
	}
	if err := u.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *ProjectUsecase) List(ctx context.Context, userID string) ([]*domain.Project, error) {
	return u.projects.ListVisibleTo(ctx, userID)
}

type ProjectDetails struct {
	Project *domain.Project
	Tasks   []*domain.Task
}

// Get returns project with its tasks in creation order.
func (u *ProjectUsecase) Get(ctx context.Context, project *domain.Project) (*ProjectDetails, error) {
	tasks, err := u.tasks.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return &ProjectDetails{Project: project, Tasks: tasks}, nil
}

// Update rewrites the descriptive fields only. The manager never changes.
func (u *ProjectUsecase) Update(ctx context.Context, project *domain.Project, in ProjectInput) error {
	project.ProjectName = in.ProjectName
	project.ClientName = in.ClientName
	project.Description = in.Description
	return u.projects.Update(ctx, project)
}

func (u *ProjectUsecase) Delete(ctx context.Context, project *domain.Project) error {
	return u.projects.Delete(ctx, project.ID)
}
