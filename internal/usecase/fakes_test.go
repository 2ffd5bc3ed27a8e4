package usecase_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"github.com/ErlanBelekov/uptask/internal/email"
)

// ---- repositories ----
// Every fake returns zero values for hooks left nil.

type fakeUserRepo struct {
	create         func(ctx context.Context, u *domain.User) error
	findByID       func(ctx context.Context, id string) (*domain.User, error)
	findByEmail    func(ctx context.Context, email string) (*domain.User, error)
	findIdentity   func(ctx context.Context, id string) (domain.Identity, error)
	listIdentities func(ctx context.Context, ids []string) ([]domain.Identity, error)
	update         func(ctx context.Context, u *domain.User) error
}

func (r *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if r.create == nil {
		return nil
	}
	return r.create(ctx, u)
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if r.findByID == nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findByID(ctx, id)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.findByEmail == nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findByEmail(ctx, email)
}

func (r *fakeUserRepo) FindIdentity(ctx context.Context, id string) (domain.Identity, error) {
	if r.findIdentity == nil {
		return domain.Identity{}, domain.ErrUserNotFound
	}
	return r.findIdentity(ctx, id)
}

func (r *fakeUserRepo) ListIdentities(ctx context.Context, ids []string) ([]domain.Identity, error) {
	if r.listIdentities == nil {
		return nil, nil
	}
	return r.listIdentities(ctx, ids)
}

func (r *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	if r.update == nil {
		return nil
	}
	return r.update(ctx, u)
}

type fakeTokenRepo struct {
	create             func(ctx context.Context, t *domain.Token) error
	findByToken        func(ctx context.Context, token string) (*domain.Token, error)
	delete             func(ctx context.Context, id string) error
	deleteIssuedBefore func(ctx context.Context, cutoff time.Time) (int, error)
}

func (r *fakeTokenRepo) Create(ctx context.Context, t *domain.Token) error {
	if r.create == nil {
		return nil
	}
	return r.create(ctx, t)
}

func (r *fakeTokenRepo) FindByToken(ctx context.Context, token string) (*domain.Token, error) {
	if r.findByToken == nil {
		return nil, domain.ErrTokenInvalid
	}
	return r.findByToken(ctx, token)
}

func (r *fakeTokenRepo) Delete(ctx context.Context, id string) error {
	if r.delete == nil {
		return nil
	}
	return r.delete(ctx, id)
}

func (r *fakeTokenRepo) DeleteIssuedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if r.deleteIssuedBefore == nil {
		return 0, nil
	}
	return r.deleteIssuedBefore(ctx, cutoff)
}

type fakeProjectRepo struct {
	create        func(ctx context.Context, p *domain.Project) error
	findByID      func(ctx context.Context, id string) (*domain.Project, error)
	listVisibleTo func(ctx context.Context, userID string) ([]*domain.Project, error)
	update        func(ctx context.Context, p *domain.Project) error
	delete        func(ctx context.Context, id string) error
	appendTask    func(ctx context.Context, projectID, taskID string) error
	removeTask    func(ctx context.Context, projectID, taskID string) error
	addMember     func(ctx context.Context, projectID, userID string) error
	removeMember  func(ctx context.Context, projectID, userID string) error
}

func (r *fakeProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	if r.create == nil {
		return nil
	}
	return r.create(ctx, p)
}

func (r *fakeProjectRepo) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	if r.findByID == nil {
		return nil, domain.ErrProjectNotFound
	}
	return r.findByID(ctx, id)
}

func (r *fakeProjectRepo) ListVisibleTo(ctx context.Context, userID string) ([]*domain.Project, error) {
	if r.listVisibleTo == nil {
		return nil, nil
	}
	return r.listVisibleTo(ctx, userID)
}

func (r *fakeProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	if r.update == nil {
		return nil
	}
	return r.update(ctx, p)
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id string) error {
	if r.delete == nil {
		return nil
	}
	return r.delete(ctx, id)
}

func (r *fakeProjectRepo) AppendTask(ctx context.Context, projectID, taskID string) error {
	if r.appendTask == nil {
		return nil
	}
	return r.appendTask(ctx, projectID, taskID)
}

func (r *fakeProjectRepo) RemoveTask(ctx context.Context, projectID, taskID string) error {
	if r.removeTask == nil {
		return nil
	}
	return r.removeTask(ctx, projectID, taskID)
}

func (r *fakeProjectRepo) AddMember(ctx context.Context, projectID, userID string) error {
	if r.addMember == nil {
		return nil
	}
	return r.addMember(ctx, projectID, userID)
}

func (r *fakeProjectRepo) RemoveMember(ctx context.Context, projectID, userID string) error {
	if r.removeMember == nil {
		return nil
	}
	return r.removeMember(ctx, projectID, userID)
}

type fakeTaskRepo struct {
	create        func(ctx context.Context, t *domain.Task) error
	findByID      func(ctx context.Context, id string) (*domain.Task, error)
	listByProject func(ctx context.Context, projectID string) ([]*domain.Task, error)
	update        func(ctx context.Context, t *domain.Task) error
	recordStatus  func(ctx context.Context, taskID string, change domain.StatusChange) error
	delete        func(ctx context.Context, id string) error
	appendNote    func(ctx context.Context, taskID, noteID string) error
	removeNote    func(ctx context.Context, taskID, noteID string) error
}

func (r *fakeTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	if r.create == nil {
		return nil
	}
	return r.create(ctx, t)
}

func (r *fakeTaskRepo) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	if r.findByID == nil {
		return nil, domain.ErrTaskNotFound
	}
	return r.findByID(ctx, id)
}

func (r *fakeTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	if r.listByProject == nil {
		return nil, nil
	}
	return r.listByProject(ctx, projectID)
}

func (r *fakeTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	if r.update == nil {
		return nil
	}
	return r.update(ctx, t)
}

func (r *fakeTaskRepo) RecordStatus(ctx context.Context, taskID string, change domain.StatusChange) error {
	if r.recordStatus == nil {
		return nil
	}
	return r.recordStatus(ctx, taskID, change)
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	if r.delete == nil {
		return nil
	}
	return r.delete(ctx, id)
}

func (r *fakeTaskRepo) AppendNote(ctx context.Context, taskID, noteID string) error {
	if r.appendNote == nil {
		return nil
	}
	return r.appendNote(ctx, taskID, noteID)
}

func (r *fakeTaskRepo) RemoveNote(ctx context.Context, taskID, noteID string) error {
	if r.removeNote == nil {
		return nil
	}
	return r.removeNote(ctx, taskID, noteID)
}

type fakeNoteRepo struct {
	create     func(ctx context.Context, n *domain.Note) error
	findByID   func(ctx context.Context, id string) (*domain.Note, error)
	listByTask func(ctx context.Context, taskID string) ([]*domain.Note, error)
	delete     func(ctx context.Context, id string) error
}

func (r *fakeNoteRepo) Create(ctx context.Context, n *domain.Note) error {
	if r.create == nil {
		return nil
	}
	return r.create(ctx, n)
}

func (r *fakeNoteRepo) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	if r.findByID == nil {
		return nil, domain.ErrNoteNotFound
	}
	return r.findByID(ctx, id)
}

func (r *fakeNoteRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.Note, error) {
	if r.listByTask == nil {
		return nil, nil
	}
	return r.listByTask(ctx, taskID)
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id string) error {
	if r.delete == nil {
		return nil
	}
	return r.delete(ctx, id)
}

// ---- credentials and mail ----

// fakeHasher "hashes" by prefixing, which keeps tests fast and assertions readable.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Verify(plain, hash string) (bool, error) {
	return strings.TrimPrefix(hash, "hashed:") == plain, nil
}

type fakeSigner struct{}

func (fakeSigner) Sign(userID string) (string, error) { return "jwt-for-" + userID, nil }

type dispatched struct {
	kind email.Kind
	to   email.Recipient
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []dispatched
}

func (m *fakeMailer) Dispatch(_ context.Context, kind email.Kind, to email.Recipient) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, dispatched{kind: kind, to: to})
}
