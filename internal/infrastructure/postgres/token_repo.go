package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) Create(ctx context.Context, t *domain.Token) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tokens (id, token, user_id, created_at) VALUES ($1, $2, $3, $4)`,
		t.ID, t.Token, t.UserID, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create token: %w", err)
	}
	return nil
}

// FindByToken returns the newest token with the given value. Six-digit codes
// can collide across users, so the latest issue wins.
func (r *TokenRepository) FindByToken(ctx context.Context, token string) (*domain.Token, error) {
	var t domain.Token
	err := r.pool.QueryRow(ctx, `
		SELECT id, token, user_id, created_at
		FROM tokens
		WHERE token = $1
		ORDER BY created_at DESC
		LIMIT 1`, token,
	).Scan(&t.ID, &t.Token, &t.UserID, &t.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return &t, nil
}

func (r *TokenRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (r *TokenRepository) DeleteIssuedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
