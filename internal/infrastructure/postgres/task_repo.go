package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// statusChangeRow is the JSONB shape of one completed_by entry.
type statusChangeRow struct {
	User      string            `json:"user"`
	Status    domain.TaskStatus `json:"status"`
	ChangedAt time.Time         `json:"changedAt"`
}

const taskColumns = `id, project_id, name, description, status,
		       completed_by, note_ids, created_at, updated_at`

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tasks (id, project_id, name, description, status)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.ProjectID, t.Name, t.Description, t.Status,
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE project_id = $1
		ORDER BY created_at ASC, id ASC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tasks SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1`,
		t.ID, t.Name, t.Description,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) RecordStatus(ctx context.Context, taskID string, change domain.StatusChange) error {
	entry := []statusChangeRow{{User: change.UserID, Status: change.Status, ChangedAt: change.ChangedAt}}

	tag, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET status = $2, completed_by = completed_by || $3::jsonb, updated_at = NOW()
		WHERE id = $1`,
		taskID, change.Status, entry,
	)
	if err != nil {
		return fmt.Errorf("record status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Delete relies on ON DELETE CASCADE to remove the task's notes.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) AppendNote(ctx context.Context, taskID, noteID string) error {
	return r.mutateNotes(ctx, "append note", `
		UPDATE tasks SET note_ids = array_append(note_ids, $2), updated_at = NOW()
		WHERE id = $1`, taskID, noteID)
}

func (r *TaskRepository) RemoveNote(ctx context.Context, taskID, noteID string) error {
	return r.mutateNotes(ctx, "remove note", `
		UPDATE tasks SET note_ids = array_remove(note_ids, $2), updated_at = NOW()
		WHERE id = $1`, taskID, noteID)
}

func (r *TaskRepository) mutateNotes(ctx context.Context, op, query, taskID, noteID string) error {
	tag, err := r.pool.Exec(ctx, query, taskID, noteID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t       domain.Task
		history []statusChangeRow
	)
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Name, &t.Description, &t.Status,
		&history, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}

	t.CompletedBy = make([]domain.StatusChange, len(history))
	for i, h := range history {
		t.CompletedBy[i] = domain.StatusChange{UserID: h.User, Status: h.Status, ChangedAt: h.ChangedAt}
	}
	return &t, nil
}
