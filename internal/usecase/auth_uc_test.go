package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"ai-chat-backend/internal/domain"
)

func newAuthFixture() (*authUC, *memUserRepo, *memSessionRepo) {
	users := newMemUserRepo()
	sessions := newMemSessionRepo()
	// MinCost keeps each hash at microseconds instead of ~250ms.
	uc := NewAuthUseCase(users, sessions, bcrypt.MinCost, newTestLogger())
	return uc, users, sessions
}

func TestSignupAndLoginResolve(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	u, err := uc.Signup(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.ID == "" {
		t.Fatal("signup must assign an identity")
	}

	tok, err := uc.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok == "" {
		t.Fatal("login must issue a session token")
	}

	uid, err := uc.Resolve(ctx, tok)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if uid != u.ID {
		t.Fatalf("resolved %q, expected %q", uid, u.ID)
	}
}

func TestSignupStoresHashNotPlaintext(t *testing.T) {
	uc, users, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := uc.Signup(ctx, "alice", "pw1"); err != nil {
		t.Fatal(err)
	}
	stored, err := users.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if stored.PasswordHash == "pw1" {
		t.Fatal("plaintext password must never be stored")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	uc, users, _ := newAuthFixture()
	ctx := context.Background()

	first, err := uc.Signup(ctx, "alice", "pw1")
	if err != nil {
		t.Fatal(err)
	}
	_, err = uc.Signup(ctx, "alice", "pw2")
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	// Existing record untouched: the original password still verifies.
	stored, err := users.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if stored.ID != first.ID {
		t.Fatal("duplicate signup must not replace the existing user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1")); err != nil {
		t.Fatal("original credential was overwritten")
	}
}

func TestSignupRejectsEmptyInput(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := uc.Signup(ctx, "  ", "pw"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for blank username, got %v", err)
	}
	if _, err := uc.Signup(ctx, "bob", ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty password, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := uc.Signup(ctx, "alice", "pw1"); err != nil {
		t.Fatal(err)
	}

	if _, err := uc.Login(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// Unknown user answers the same way as a bad password.
	if _, err := uc.Login(ctx, "mallory", "pw1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := uc.Signup(ctx, "alice", "pw1"); err != nil {
		t.Fatal(err)
	}
	tok, err := uc.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatal(err)
	}

	if err := uc.Logout(ctx, tok); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := uc.Resolve(ctx, tok); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after logout, got %v", err)
	}

	// Logging out again, or with a token that never existed, is a no-op.
	if err := uc.Logout(ctx, tok); err != nil {
		t.Fatalf("repeated logout errored: %v", err)
	}
	if err := uc.Logout(ctx, "never-existed"); err != nil {
		t.Fatalf("unknown-token logout errored: %v", err)
	}
	if err := uc.Logout(ctx, ""); err != nil {
		t.Fatalf("empty-token logout errored: %v", err)
	}
}

func TestResolveEmptyToken(t *testing.T) {
	uc, _, _ := newAuthFixture()
	if _, err := uc.Resolve(context.Background(), ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestLoginSessionSaveFailure(t *testing.T) {
	uc, _, sessions := newAuthFixture()
	ctx := context.Background()

	if _, err := uc.Signup(ctx, "alice", "pw1"); err != nil {
		t.Fatal(err)
	}
	sessions.saveErr = errors.New("redis down")
	if _, err := uc.Login(ctx, "alice", "pw1"); err == nil {
		t.Fatal("expected error when the session store is unavailable")
	}
}

func TestCurrentUser(t *testing.T) {
	uc, users, _ := newAuthFixture()
	ctx := context.Background()

	created, err := uc.Signup(ctx, "alice", "pw1")
	if err != nil {
		t.Fatal(err)
	}
	tok, err := uc.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatal(err)
	}

	u, err := uc.CurrentUser(ctx, tok)
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != created.ID || u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if err := uc.Logout(ctx, tok); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.CurrentUser(ctx, tok); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("after logout: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := uc.CurrentUser(ctx, ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("empty token: expected ErrUnauthenticated, got %v", err)
	}

	// A session bound to a deleted account reads as logged out.
	tok2, err := uc.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatal(err)
	}
	users.mu.Lock()
	delete(users.byID, created.ID)
	users.mu.Unlock()
	if _, err := uc.CurrentUser(ctx, tok2); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("orphaned session: expected ErrUnauthenticated, got %v", err)
	}
}
