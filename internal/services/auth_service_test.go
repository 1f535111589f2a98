package services_test

import (
	"errors"
	"testing"

	"rewear/internal/repos"
	"rewear/internal/services"
)

func newAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &services.AuthService{Users: repos.NewUserRepo(db)}
}

func TestSignupGrantsStartingBalance(t *testing.T) {
	auth := newAuthService(t)

	u, err := auth.Signup("sid-1", "newbie", "newbie@example.com", "Str0ngPass!")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.Points != services.StartingPoints {
		t.Fatalf("want %d starting points, got %d", services.StartingPoints, u.Points)
	}
	if u.Role != "user" {
		t.Fatalf("want role user, got %s", u.Role)
	}

	// signup binds the session immediately
	cur, err := auth.CurrentUser("sid-1")
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if cur.ID != u.ID {
		t.Fatalf("session bound to %s, want %s", cur.ID, u.ID)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	auth := newAuthService(t)

	if _, err := auth.Signup("sid-1", "copycat", "fashion@example.com", "Str0ngPass!"); !errors.Is(err, services.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
	// lookup is case-insensitive
	if _, err := auth.Signup("sid-1", "copycat", "Fashion@Example.COM", "Str0ngPass!"); !errors.Is(err, services.ErrEmailTaken) {
		t.Fatalf("mixed case: want ErrEmailTaken, got %v", err)
	}
}

func TestLoginLogout(t *testing.T) {
	auth := newAuthService(t)

	u, err := auth.Login("sid-2", "fashion@example.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.Username != "fashionlover" {
		t.Fatalf("wrong user: %s", u.Username)
	}

	if _, err := auth.Login("sid-2", "fashion@example.com", "wrongpass"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("bad password: want ErrBadCreds, got %v", err)
	}
	if _, err := auth.Login("sid-2", "ghost@example.com", "Passw0rd!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("unknown email: want ErrBadCreds, got %v", err)
	}

	if err := auth.Logout("sid-2"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := auth.CurrentUser("sid-2"); err == nil {
		t.Fatal("session should be unbound after logout")
	}
}
