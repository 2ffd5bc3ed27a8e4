package postgres

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

func (r *NoteRepository) Create(ctx context.Context, n *domain.Note) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notes (id, content, created_by, task_id)
		VALUES ($1, $2, $3, $4)`,
		n.ID, n.Content, n.CreatedBy, n.TaskID,
	)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, content, created_by, task_id, created_at FROM notes WHERE id = $1`, id)
	return scanNote(row)
}

func (r *NoteRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.Note, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, content, created_by, task_id, created_at
		FROM notes
		WHERE task_id = $1
		ORDER BY created_at ASC, id ASC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func scanNote(row pgx.Row) (*domain.Note, error) {
	var n domain.Note
	if err := row.Scan(&n.ID, &n.Content, &n.CreatedBy, &n.TaskID, &n.CreatedAt); err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	return &n, nil
}
