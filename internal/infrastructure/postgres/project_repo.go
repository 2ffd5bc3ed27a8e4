package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

const projectColumns = `id, project_name, client_name, description, manager_id,
		       team_ids, task_ids, created_at, updated_at`

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO projects (id, project_name, client_name, description, manager_id, team_ids, task_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.ProjectName, p.ClientName, p.Description, p.ManagerID,
		nonNil(p.Team), nonNil(p.Tasks),
	)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

func (r *ProjectRepository) ListVisibleTo(ctx context.Context, userID string) ([]*domain.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE manager_id::text = $1 OR $1 = ANY(team_ids)
		ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE projects
		SET project_name = $2, client_name = $3, description = $4, updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.ProjectName, p.ClientName, p.Description,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for tasks and, through them, notes.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) AppendTask(ctx context.Context, projectID, taskID string) error {
	return r.mutateList(ctx, "append task", `
		UPDATE projects SET task_ids = array_append(task_ids, $2), updated_at = NOW()
		WHERE id = $1`, projectID, taskID)
}

func (r *ProjectRepository) RemoveTask(ctx context.Context, projectID, taskID string) error {
	return r.mutateList(ctx, "remove task", `
		UPDATE projects SET task_ids = array_remove(task_ids, $2), updated_at = NOW()
		WHERE id = $1`, projectID, taskID)
}

func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID string) error {
	err := r.mutateList(ctx, "add member", `
		UPDATE projects SET team_ids = array_append(team_ids, $2), updated_at = NOW()
		WHERE id = $1 AND NOT ($2 = ANY(team_ids))`, projectID, userID)
	if errors.Is(err, domain.ErrProjectNotFound) {
		return r.explainNoop(ctx, projectID, domain.ErrAlreadyMember)
	}
	return err
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) error {
	err := r.mutateList(ctx, "remove member", `
		UPDATE projects SET team_ids = array_remove(team_ids, $2), updated_at = NOW()
		WHERE id = $1 AND $2 = ANY(team_ids)`, projectID, userID)
	if errors.Is(err, domain.ErrProjectNotFound) {
		return r.explainNoop(ctx, projectID, domain.ErrNotMember)
	}
	return err
}

func (r *ProjectRepository) mutateList(ctx context.Context, op, query, projectID, value string) error {
	tag, err := r.pool.Exec(ctx, query, projectID, value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// explainNoop distinguishes a missing project from a guard that rejected the update.
func (r *ProjectRepository) explainNoop(ctx context.Context, projectID string, guardErr error) error {
	if _, err := r.FindByID(ctx, projectID); err != nil {
		return err
	}
	return guardErr
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.ProjectName, &p.ClientName, &p.Description, &p.ManagerID,
		&p.Team, &p.Tasks, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return &p, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
