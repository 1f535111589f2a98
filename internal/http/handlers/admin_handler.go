package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "rewear/internal/log"
	"rewear/internal/repos"
	"rewear/internal/validate"
)

type AdminHandler struct {
	Items *repos.ItemRepo
	Users *repos.UserRepo
}

// GET /api/v1/admin/listings — the moderation queue.
func (h *AdminHandler) PendingListings(c *fiber.Ctx) error {
	items, err := h.Items.ListPending()
	if err != nil {
		applog.Error(c, "admin.listings.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load listings")
	}
	return c.JSON(fiber.Map{"items": items, "count": len(items)})
}

// POST /api/v1/admin/listings/:id/approve
func (h *AdminHandler) ApproveListing(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing id")
	}
	if err := h.Items.Approve(id); err != nil {
		applog.Error(c, "admin.listings.approve.fail", err, map[string]any{"item_id": id})
		return jsonError(c, fiber.StatusConflict, "listing is not pending review")
	}
	applog.Audit(c, "admin.listings.approve", map[string]any{"item_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// POST /api/v1/admin/listings/:id/reject — rejection deletes the draft.
func (h *AdminHandler) RejectListing(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing id")
	}
	if err := h.Items.Delete(id); err != nil {
		applog.Error(c, "admin.listings.reject.fail", err, map[string]any{"item_id": id})
		return jsonError(c, fiber.StatusNotFound, "listing not found")
	}
	applog.Audit(c, "admin.listings.reject", map[string]any{"item_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// POST /api/v1/admin/items/:id/remove — admin override on a live listing.
func (h *AdminHandler) RemoveItem(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing id")
	}
	if err := h.Items.Delete(id); err != nil {
		return jsonError(c, fiber.StatusNotFound, "item not found")
	}
	applog.Audit(c, "admin.items.remove", map[string]any{"item_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Users.ListMembers()
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load users")
	}
	return c.JSON(fiber.Map{"users": users, "count": len(users)})
}

// POST /api/v1/admin/users/:id/delete
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing id")
	}
	if err := h.Users.DeleteUserCascade(id); err != nil {
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"user_id": id})
		return jsonError(c, fiber.StatusBadRequest, "could not delete user")
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
