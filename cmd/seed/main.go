// seed creates two confirmed users and a sample project in the configured store.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"

	"github.com/ErlanBelekov/uptask/config"
	"github.com/ErlanBelekov/uptask/internal/credential"
	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/infrastructure/store"
	"github.com/ErlanBelekov/uptask/internal/repository"
	"github.com/ErlanBelekov/uptask/internal/usecase"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const seedPassword = "password123"

type seedUser struct {
	name  string
	email string
}

var (
	manager  = seedUser{"Ana Manager", "manager@uptask.local"}
	teammate = seedUser{"Luis Colaborador", "member@uptask.local"}
)

var tasks = []usecase.TaskInput{
	{Name: "Diseñar login", Description: "Pantallas de acceso y registro"},
	{Name: "API de proyectos", Description: "CRUD de proyectos y tareas"},
	{Name: "Notificaciones", Description: "Correos de confirmación y recuperación"},
	{Name: "Pruebas", Description: "Cobertura de los casos de autorización"},
	{Name: "Despliegue", Description: "Pipeline de staging y producción"},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	db, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer db.Close()

	hasher := credential.Bcrypt{}
	managerID, err := ensureUser(ctx, db.Users, hasher, manager)
	if err != nil {
		log.Fatalf("seed %s: %v", manager.email, err)
	}
	memberID, err := ensureUser(ctx, db.Users, hasher, teammate)
	if err != nil {
		log.Fatalf("seed %s: %v", teammate.email, err)
	}

	logger := slog.Default()
	projects := usecase.NewProjectUsecase(db.Projects, db.Tasks)
	taskUsecase := usecase.NewTaskUsecase(db.Projects, db.Tasks, db.Notes, db.Users, logger)
	team := usecase.NewTeamUsecase(db.Projects, db.Users)
	notes := usecase.NewNoteUsecase(db.Tasks, db.Notes, logger)

	project, err := projects.Create(ctx, managerID, usecase.ProjectInput{
		ProjectName: "UpTask Demo",
		ClientName:  "Cliente Demo",
		Description: "Proyecto de ejemplo generado por seed",
	})
	if err != nil {
		log.Fatalf("create project: %v", err)
	}
	if err := team.Add(ctx, project, memberID); err != nil {
		log.Fatalf("add teammate: %v", err)
	}

	var first *domain.Task
	for _, in := range tasks {
		t, err := taskUsecase.Create(ctx, project, in)
		if err != nil {
			log.Fatalf("create task %q: %v", in.Name, err)
		}
		if first == nil {
			first = t
		}
	}
	if err := taskUsecase.UpdateStatus(ctx, first, memberID, domain.TaskInProgress); err != nil {
		log.Fatalf("update status: %v", err)
	}
	if _, err := notes.Create(ctx, first, memberID, "Empiezo con el formulario de registro"); err != nil {
		log.Fatalf("create note: %v", err)
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Store:     %s\n", db.Driver)
	fmt.Printf("  Manager:   %s / %s\n", manager.email, seedPassword)
	fmt.Printf("  Teammate:  %s / %s\n", teammate.email, seedPassword)
	fmt.Printf("  Project:   %s (%d tasks)\n", project.ID, len(tasks))
	fmt.Println()
	fmt.Println("Log in:")
	fmt.Println()
	fmt.Printf("  curl -s -X POST http://localhost:%s/api/auth/login \\\n", cfg.Port)
	fmt.Printf("    -H 'Content-Type: application/json' \\\n")
	fmt.Printf("    -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", manager.email, seedPassword)
}

// ensureUser returns the id of the user with u.email, creating a confirmed
// account when none exists so re-runs reuse it.
func ensureUser(ctx context.Context, users repository.UserRepository, hasher credential.Bcrypt, u seedUser) (string, error) {
	existing, err := users.FindByEmail(ctx, u.email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	hash, err := hasher.Hash(seedPassword)
	if err != nil {
		return "", err
	}
	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      u.name,
		Email:     u.email,
		Password:  hash,
		Confirmed: true,
	}
	if err := users.Create(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}
