package bootstrap

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/interactive/eservice-platform/internal/core/domain"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	creates int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.creates++
	created := *user
	created.ID = int64(len(r.users) + 1)
	r.users[user.Username] = &created
	return &created, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func TestSeed_CreatesDefaultAccounts(t *testing.T) {
	repo := newStubUserRepo()

	if err := Seed(context.Background(), repo, zerolog.Nop()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	admin, err := repo.FindByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if len(admin.Roles) != 1 || admin.Roles[0] != domain.RoleAdmin {
		t.Fatalf("unexpected admin roles: %v", admin.Roles)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("adminpass")); err != nil {
		t.Fatalf("admin password hash mismatch: %v", err)
	}

	user, err := repo.FindByUsername(context.Background(), "user1")
	if err != nil {
		t.Fatalf("user1 not created: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected user roles: %v", user.Roles)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	repo := newStubUserRepo()

	if err := Seed(context.Background(), repo, zerolog.Nop()); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	first := repo.creates

	if err := Seed(context.Background(), repo, zerolog.Nop()); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if repo.creates != first {
		t.Fatalf("second seed created accounts again: %d -> %d", first, repo.creates)
	}
}
