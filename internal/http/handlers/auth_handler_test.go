package handlers_test

import (
	"net/http"
	"testing"
)

func TestSignupFlow(t *testing.T) {
	env := newTestEnv(t)

	creds := map[string]string{
		"username": "newbie",
		"email":    "newbie@example.com",
		"password": "Str0ngPass!",
	}
	status, body := env.call(t, http.MethodPost, "/api/v1/auth/signup", creds, nil)
	if status != http.StatusCreated {
		t.Fatalf("signup: want 201, got %d (%v)", status, body)
	}
	if body["points"].(float64) != 100 {
		t.Fatalf("want 100 starting points, got %v", body["points"])
	}
	if body["role"] != "user" {
		t.Fatalf("want role user, got %v", body["role"])
	}
	if _, leaked := body["password_hash"]; leaked {
		t.Fatal("password hash leaked in response")
	}

	// duplicate email conflicts
	status, _ = env.call(t, http.MethodPost, "/api/v1/auth/signup", creds, nil)
	if status != http.StatusConflict {
		t.Fatalf("duplicate signup: want 409, got %d", status)
	}
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)
	cases := []map[string]string{
		{"username": "newbie", "email": "not-an-email", "password": "Str0ngPass!"},
		{"username": "ab", "email": "a@example.com", "password": "Str0ngPass!"},
		{"username": "newbie", "email": "a@example.com", "password": "weakpass"},
	}
	for i, creds := range cases {
		status, _ := env.call(t, http.MethodPost, "/api/v1/auth/signup", creds, nil)
		if status != http.StatusBadRequest {
			t.Fatalf("case %d: want 400, got %d", i, status)
		}
	}
}

func TestLoginMeLogout(t *testing.T) {
	env := newTestEnv(t)
	sid := env.login(t, "fashion@example.com")

	status, body := env.call(t, http.MethodGet, "/api/v1/auth/me", nil, sid)
	if status != http.StatusOK || body["username"] != "fashionlover" {
		t.Fatalf("me: %d (%v)", status, body)
	}

	status, _ = env.call(t, http.MethodGet, "/api/v1/auth/me", nil, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("anonymous me: want 401, got %d", status)
	}

	status, _ = env.call(t, http.MethodPost, "/api/v1/auth/logout", nil, sid)
	if status != http.StatusOK {
		t.Fatalf("logout: want 200, got %d", status)
	}
	status, _ = env.call(t, http.MethodGet, "/api/v1/auth/me", nil, sid)
	if status != http.StatusUnauthorized {
		t.Fatalf("me after logout: want 401, got %d", status)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	status, _ := env.call(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "fashion@example.com", "password": "wrong"}, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", status)
	}
}

func TestLoginThrottle(t *testing.T) {
	env := newTestEnv(t)
	bad := map[string]string{"email": "fashion@example.com", "password": "wrong"}
	for i := 0; i < 5; i++ {
		if status, _ := env.call(t, http.MethodPost, "/api/v1/auth/login", bad, nil); status != http.StatusUnauthorized {
			t.Fatalf("attempt %d: want 401, got %d", i+1, status)
		}
	}
	status, _ := env.call(t, http.MethodPost, "/api/v1/auth/login", bad, nil)
	if status != http.StatusTooManyRequests {
		t.Fatalf("6th attempt: want 429, got %d", status)
	}
}
