package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/taskline/backend/domain"
)

const adminID = int64(1001)

type fakeUserRepo struct {
	users map[int64]*domain.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[user.ID]; ok {
		return nil
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func TestGetOrCreate_AdminFlagOnFirstContact(t *testing.T) {
	repo := newFakeUserRepo()
	uc := New(repo, adminID, nil)

	admin, err := uc.GetOrCreate(context.Background(), adminID, "boss", "Big Boss")
	if err != nil {
		t.Fatalf("GetOrCreate admin: %v", err)
	}
	if !admin.IsAdmin {
		t.Error("configured admin id should register with the admin flag")
	}

	regular, err := uc.GetOrCreate(context.Background(), 42, "worker", "Plain Worker")
	if err != nil {
		t.Fatalf("GetOrCreate regular: %v", err)
	}
	if regular.IsAdmin {
		t.Error("non-admin id must not get the admin flag")
	}
	if regular.Username != "worker" {
		t.Errorf("username not persisted: %q", regular.Username)
	}
}

func TestGetOrCreate_ExistingUserUntouched(t *testing.T) {
	repo := newFakeUserRepo()
	uc := New(repo, adminID, nil)

	if _, err := uc.GetOrCreate(context.Background(), 42, "original", "First Name"); err != nil {
		t.Fatalf("first contact: %v", err)
	}

	user, err := uc.GetOrCreate(context.Background(), 42, "renamed", "Second Name")
	if err != nil {
		t.Fatalf("second contact: %v", err)
	}
	if user.Username != "original" {
		t.Errorf("existing row must stay untouched, got username %q", user.Username)
	}
}

func TestIsAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := New(repo, adminID, nil)

	if _, err := uc.GetOrCreate(context.Background(), adminID, "boss", ""); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if _, err := uc.GetOrCreate(context.Background(), 42, "worker", ""); err != nil {
		t.Fatalf("seed worker: %v", err)
	}

	ok, err := uc.IsAdmin(context.Background(), adminID)
	if err != nil || !ok {
		t.Errorf("IsAdmin(admin) = %v, %v; want true, nil", ok, err)
	}

	ok, err = uc.IsAdmin(context.Background(), 42)
	if err != nil || ok {
		t.Errorf("IsAdmin(worker) = %v, %v; want false, nil", ok, err)
	}
}

func TestIsAdmin_UnknownUserIsNotAnError(t *testing.T) {
	uc := New(newFakeUserRepo(), adminID, nil)

	ok, err := uc.IsAdmin(context.Background(), 999)
	if err != nil {
		t.Fatalf("unknown id must not be an error: %v", err)
	}
	if ok {
		t.Error("unknown id must not be an admin")
	}
}

func TestIsAdmin_StorageErrorPropagates(t *testing.T) {
	repo := newFakeUserRepo()
	repo.err = errors.New("connection refused")
	uc := New(repo, adminID, nil)

	if _, err := uc.IsAdmin(context.Background(), adminID); err == nil {
		t.Error("storage failure must propagate")
	}
}
