package handlers

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rewear/internal/imaging"
	applog "rewear/internal/log"
)

type MediaHandler struct {
	MediaDir string
}

// Upload handles POST /api/v1/media: one listing photo per request.
// The photo is normalized (sniffed, downscaled, re-encoded JPEG) before
// anything touches disk; the returned path goes into a listing draft.
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("photo")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "missing photo file")
	}
	if fh.Size > imaging.MaxUploadBytes {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, "photo too large")
	}

	f, err := fh.Open()
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "could not read upload")
	}
	defer f.Close()

	photo, err := imaging.Normalize(f)
	if err != nil {
		applog.Security(c, "media.upload.reject", map[string]any{"reason": err.Error()})
		return jsonError(c, fiber.StatusBadRequest, "photo must be a JPEG or PNG image")
	}

	rel := filepath.Join("items", uuid.NewString()+".jpg")
	full := filepath.Join(h.MediaDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		applog.Error(c, "media.upload.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not store photo")
	}
	if err := os.WriteFile(full, photo.Data, 0o644); err != nil {
		applog.Error(c, "media.upload.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not store photo")
	}

	applog.Audit(c, "media.upload", map[string]any{"path": rel, "w": photo.Width, "h": photo.Height})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"path":   filepath.ToSlash(rel),
		"width":  photo.Width,
		"height": photo.Height,
	})
}
