// Package store opens the repository set for the configured driver.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/uptask/config"
	"github.com/ErlanBelekov/uptask/internal/health"
	"github.com/ErlanBelekov/uptask/internal/infrastructure/mongodb"
	"github.com/ErlanBelekov/uptask/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/uptask/internal/repository"
)

type Store struct {
	Driver string

	Users    repository.UserRepository
	Tokens   repository.TokenRepository
	Projects repository.ProjectRepository
	Tasks    repository.TaskRepository
	Notes    repository.NoteRepository

	// Pinger backs the readiness probe.
	Pinger health.Pinger

	close func()
}

// Open connects to the store named by cfg.StoreDriver and brings its schema
// or indexes up to date.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.DatabaseURL)
	case config.DriverMongo:
		return openMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.TokenTTL)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

func openPostgres(ctx context.Context, url string) (*Store, error) {
	pool, err := postgres.NewPool(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{
		Driver:   config.DriverPostgres,
		Users:    postgres.NewUserRepository(pool),
		Tokens:   postgres.NewTokenRepository(pool),
		Projects: postgres.NewProjectRepository(pool),
		Tasks:    postgres.NewTaskRepository(pool),
		Notes:    postgres.NewNoteRepository(pool),
		Pinger:   pool,
		close:    pool.Close,
	}, nil
}

func openMongo(ctx context.Context, uri, database string, tokenTTL time.Duration) (*Store, error) {
	client, err := mongodb.Connect(ctx, uri)
	if err != nil {
		return nil, err
	}
	db := client.Database(database)
	if err := mongodb.EnsureIndexes(ctx, db, tokenTTL); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Store{
		Driver:   config.DriverMongo,
		Users:    mongodb.NewUserRepository(db),
		Tokens:   mongodb.NewTokenRepository(db),
		Projects: mongodb.NewProjectRepository(db),
		Tasks:    mongodb.NewTaskRepository(db),
		Notes:    mongodb.NewNoteRepository(db),
		Pinger:   mongodb.Pinger{Client: client},
		close: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		},
	}, nil
}
