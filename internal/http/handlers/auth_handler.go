package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "rewear/internal/log"
	"rewear/internal/services"
	"rewear/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var body credentials
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	email, ok := validate.Email(body.Email)
	if !ok {
		applog.Security(c, "auth.signup.fail", map[string]any{"reason": "bad_email"})
		return jsonError(c, fiber.StatusBadRequest, "invalid email")
	}
	username, ok := validate.Username(body.Username)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "username must be 3-20 word characters")
	}
	if !validate.Password(body.Password) {
		return jsonError(c, fiber.StatusBadRequest, "password must be 8-64 chars with upper, lower, digit and symbol")
	}

	sid := ensureSID(c)
	u, err := h.Auth.Signup(sid, username, email, body.Password)
	if err != nil {
		if err == services.ErrEmailTaken {
			return jsonError(c, fiber.StatusConflict, "email already registered")
		}
		applog.Error(c, "auth.signup.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not create account")
	}
	applog.Audit(c, "auth.signup.success", map[string]any{"user_id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body credentials
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	email, ok := validate.Email(body.Email)
	if !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return jsonError(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	sid := ensureSID(c)
	u, err := h.Auth.Login(sid, email, body.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return jsonError(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	applog.Audit(c, "auth.login.success", map[string]any{"user_id": u.ID})
	return c.JSON(u)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}

// Me reports the current session's user, or 401.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid == "" {
		return jsonError(c, fiber.StatusUnauthorized, "login required")
	}
	u, err := h.Auth.CurrentUser(sid)
	if err != nil || u == nil {
		return jsonError(c, fiber.StatusUnauthorized, "login required")
	}
	return c.JSON(u)
}
