package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"rewear/internal/config"
	"rewear/internal/http/handlers"
	"rewear/internal/repos"
	"rewear/internal/services"

	"github.com/jmoiron/sqlx"
)

// testEnv wires the full API surface against an in-memory database, the
// same routes as cmd/rewear minus the global middleware.
type testEnv struct {
	app      *fiber.App
	db       *sqlx.DB
	mediaDir string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{MediaDir: t.TempDir(), SwapPolicy: "free"}
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	authH := &handlers.AuthHandler{Auth: authSvc}
	deps := handlers.NewDeps(db, cfg, authSvc)

	app := fiber.New()
	api := app.Group("/api/v1")

	api.Get("/items", deps.ItemHandler.Browse)
	api.Get("/items/mine", handlers.RequireUser(authSvc), deps.ItemHandler.Mine)
	api.Get("/items/:id", deps.ItemHandler.Detail)
	api.Post("/items", handlers.RequireUser(authSvc), deps.ItemHandler.Create)

	api.Post("/items/:id/swap", handlers.RequireUser(authSvc), deps.SwapHandler.Request)
	api.Post("/items/:id/redeem", handlers.RequireUser(authSvc), deps.SwapHandler.Redeem)
	api.Get("/swaps/outgoing", handlers.RequireUser(authSvc), deps.SwapHandler.Outgoing)
	api.Get("/swaps/incoming", handlers.RequireUser(authSvc), deps.SwapHandler.Incoming)
	api.Post("/swaps/:id/approve", handlers.RequireUser(authSvc), deps.SwapHandler.Approve)
	api.Post("/swaps/:id/reject", handlers.RequireUser(authSvc), deps.SwapHandler.Reject)

	api.Post("/media", handlers.RequireUser(authSvc), deps.MediaHandler.Upload)

	api.Post("/auth/signup", authH.Signup)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
	}), authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/me", authH.Me)

	admin := api.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/listings", deps.AdminHandler.PendingListings)
	admin.Post("/listings/:id/approve", deps.AdminHandler.ApproveListing)
	admin.Post("/listings/:id/reject", deps.AdminHandler.RejectListing)
	admin.Post("/items/:id/remove", deps.AdminHandler.RemoveItem)
	admin.Get("/users", deps.AdminHandler.ListUsers)
	admin.Post("/users/:id/delete", deps.AdminHandler.DeleteUser)

	return testEnv{app: app, db: db, mediaDir: cfg.MediaDir}
}

// call sends a JSON request and decodes the JSON response into a map.
func (e testEnv) call(t *testing.T, method, path string, body any, sid *http.Cookie) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != nil {
		req.AddCookie(sid)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

// login authenticates a seeded account and returns its session cookie.
func (e testEnv) login(t *testing.T, email string) *http.Cookie {
	t.Helper()
	raw, _ := json.Marshal(map[string]string{"email": email, "password": "Passw0rd!"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	t.Fatalf("login %s: no sid cookie", email)
	return nil
}
