package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/usecase"
)

// ---- team ----

func TestTeamAdd(t *testing.T) {
	known := func(_ context.Context, id string) (domain.Identity, error) {
		if id == "ghost" {
			return domain.Identity{}, domain.ErrUserNotFound
		}
		return domain.Identity{ID: id}, nil
	}

	tests := []struct {
		name    string
		userID  string
		wantErr error
		wantAdd bool
	}{
		{name: "new member", userID: "user-2", wantAdd: true},
		{name: "already member", userID: "member-1", wantErr: domain.ErrAlreadyMember},
		{name: "unknown user", userID: "ghost", wantErr: domain.ErrUserNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			added := false
			projects := &fakeProjectRepo{
				addMember: func(context.Context, string, string) error { added = true; return nil },
			}
			project := testProject()
			before := len(project.Team)

			err := usecase.NewTeamUsecase(projects, &fakeUserRepo{findIdentity: known}).Add(context.Background(), project, tc.userID)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
			if added != tc.wantAdd {
				t.Errorf("store write = %v, want %v", added, tc.wantAdd)
			}
			if !tc.wantAdd && len(project.Team) != before {
				t.Error("team must be unchanged on conflict")
			}
		})
	}
}

func TestTeamRemove_NotMemberLeavesTeamUnchanged(t *testing.T) {
	projects := &fakeProjectRepo{
		removeMember: func(context.Context, string, string) error {
			t.Error("no write for a non-member")
			return nil
		},
	}
	project := testProject()

	err := usecase.NewTeamUsecase(projects, &fakeUserRepo{}).Remove(context.Background(), project, "stranger")
	if !errors.Is(err, domain.ErrNotMember) {
		t.Fatalf("got %v, want ErrNotMember", err)
	}
	if len(project.Team) != 1 {
		t.Errorf("team = %v", project.Team)
	}
}

func TestTeamList_KeepsTeamOrder(t *testing.T) {
	users := &fakeUserRepo{
		listIdentities: func(_ context.Context, _ []string) ([]domain.Identity, error) {
			return []domain.Identity{{ID: "b", Name: "B"}, {ID: "a", Name: "A"}}, nil
		},
	}
	project := testProject()
	project.Team = []string{"a", "gone", "b"}

	team, err := usecase.NewTeamUsecase(&fakeProjectRepo{}, users).List(context.Background(), project)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(team) != 2 || team[0].ID != "a" || team[1].ID != "b" {
		t.Errorf("team = %+v", team)
	}
}

func TestTeamFindMemberByEmail(t *testing.T) {
	var looked string
	users := &fakeUserRepo{
		findByEmail: func(_ context.Context, addr string) (*domain.User, error) {
			looked = addr
			return &domain.User{ID: "u1", Name: "Ana", Email: addr, Password: "hash"}, nil
		},
	}

	ident, err := usecase.NewTeamUsecase(&fakeProjectRepo{}, users).FindMemberByEmail(context.Background(), "ANA@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if looked != "ana@example.com" || ident.ID != "u1" {
		t.Errorf("looked up %q, got %+v", looked, ident)
	}
}

// ---- notes ----

func TestNoteCreate_SetsAuthorAndAppends(t *testing.T) {
	var appended string
	tasks := &fakeTaskRepo{appendNote: func(_ context.Context, _, noteID string) error { appended = noteID; return nil }}

	note, err := usecase.NewNoteUsecase(tasks, &fakeNoteRepo{}, slog.Default()).
		Create(context.Background(), &domain.Task{ID: "task-1"}, "user-1", "looks good")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.CreatedBy != "user-1" || note.TaskID != "task-1" || note.Content != "looks good" {
		t.Errorf("note = %+v", note)
	}
	if appended != note.ID {
		t.Errorf("appended %q, want %q", appended, note.ID)
	}
}

func TestNoteDelete_PullsFromTask(t *testing.T) {
	var deleted, removed string
	notes := &fakeNoteRepo{delete: func(_ context.Context, id string) error { deleted = id; return nil }}
	tasks := &fakeTaskRepo{removeNote: func(_ context.Context, _, noteID string) error { removed = noteID; return nil }}

	err := usecase.NewNoteUsecase(tasks, notes, slog.Default()).
		Delete(context.Background(), &domain.Task{ID: "task-1"}, &domain.Note{ID: "note-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "note-1" || removed != "note-1" {
		t.Errorf("deleted=%q removed=%q", deleted, removed)
	}
}
