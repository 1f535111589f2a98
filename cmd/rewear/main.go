package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"rewear/internal/config"
	"rewear/internal/http/handlers"
	applog "rewear/internal/log"
	"rewear/internal/repos"
	"rewear/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	// Global body size guard (photo uploads are the largest legal bodies)
	app.Server().MaxRequestBodySize = 10 << 20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowCredentials: true,
		AllowHeaders:     "Content-Type",
	}))
	// Attach user to context if logged in (for audit logs/handlers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
				c.Locals("userID", u.ID)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/media/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	// ---------- Media ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /media -> %s", mediaDir)

	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		// Block encoded traversal attempts as well as raw .. or null bytes
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		full := filepath.Join(mediaDir, clean)
		return c.SendFile(full, true)
	})

	// ---------- API ----------
	deps := handlers.NewDeps(db, cfg, authSvc)
	api := app.Group("/api/v1")

	// Catalog
	browseLimiter := limiter.New(limiter.Config{Max: 30, Expiration: time.Minute})
	api.Get("/items", browseLimiter, deps.ItemHandler.Browse)
	api.Get("/items/mine", handlers.RequireUser(authSvc), deps.ItemHandler.Mine)
	api.Get("/items/:id", deps.ItemHandler.Detail)
	api.Post("/items", handlers.RequireUser(authSvc), deps.ItemHandler.Create)

	// Swap & redemption
	api.Post("/items/:id/swap", handlers.RequireUser(authSvc), deps.SwapHandler.Request)
	api.Post("/items/:id/redeem", handlers.RequireUser(authSvc), deps.SwapHandler.Redeem)
	api.Get("/swaps/outgoing", handlers.RequireUser(authSvc), deps.SwapHandler.Outgoing)
	api.Get("/swaps/incoming", handlers.RequireUser(authSvc), deps.SwapHandler.Incoming)
	api.Post("/swaps/:id/approve", handlers.RequireUser(authSvc), deps.SwapHandler.Approve)
	api.Post("/swaps/:id/reject", handlers.RequireUser(authSvc), deps.SwapHandler.Reject)

	// Media upload
	api.Post("/media", handlers.RequireUser(authSvc), deps.MediaHandler.Upload)

	// Auth (login throttled)
	api.Post("/auth/signup", authH.Signup)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/me", authH.Me)

	// Admin
	admin := api.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/listings", deps.AdminHandler.PendingListings)
	admin.Post("/listings/:id/approve", deps.AdminHandler.ApproveListing)
	admin.Post("/listings/:id/reject", deps.AdminHandler.RejectListing)
	admin.Post("/items/:id/remove", deps.AdminHandler.RemoveItem)
	admin.Get("/users", deps.AdminHandler.ListUsers)
	admin.Post("/users/:id/delete", deps.AdminHandler.DeleteUser)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
