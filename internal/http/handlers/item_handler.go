package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"rewear/internal/catalog"
	applog "rewear/internal/log"
	"rewear/internal/services"
	"rewear/internal/validate"
)

type ItemHandler struct {
	Catalog  *services.CatalogService
	Listings *services.ListingService
}

// Browse handles GET /api/v1/items?q=&category=&condition=&sort=.
func (h *ItemHandler) Browse(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "q"})
		return jsonError(c, fiber.StatusBadRequest, "enter a valid keyword (letters/numbers only)")
	}
	category, ok := validate.Category(c.Query("category"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "category"})
		return jsonError(c, fiber.StatusBadRequest, "unknown category")
	}
	condition, ok := validate.Condition(c.Query("condition"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "condition"})
		return jsonError(c, fiber.StatusBadRequest, "unknown condition")
	}
	sortKey, ok := validate.SortKey(c.Query("sort"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "unknown sort key")
	}

	items, err := h.Catalog.Browse(catalog.Params{
		Text:      q,
		Category:  category,
		Condition: condition,
		Sort:      sortKey,
	})
	if err != nil {
		applog.Error(c, "items.browse.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load items")
	}
	return c.JSON(fiber.Map{"items": items, "count": len(items)})
}

func (h *ItemHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "item not found")
	}
	it, err := h.Catalog.GetItem(id)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "item not found")
	}
	return c.JSON(it)
}

// Create handles POST /api/v1/items: a new listing awaiting moderation.
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var draft services.ListingDraft
	if err := c.BodyParser(&draft); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	it, err := h.Listings.Create(currentUser(c), draft)
	if err != nil {
		var fe *services.FieldError
		if errors.As(err, &fe) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fe.Reason, "field": fe.Field})
		}
		applog.Error(c, "items.create.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not create listing")
	}
	applog.Audit(c, "items.create", map[string]any{"item_id": it.ID})
	return c.Status(fiber.StatusCreated).JSON(it)
}

// Mine lists the current user's listings, any status.
func (h *ItemHandler) Mine(c *fiber.Ctx) error {
	items, err := h.Listings.Mine(currentUser(c))
	if err != nil {
		applog.Error(c, "items.mine.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load listings")
	}
	return c.JSON(fiber.Map{"items": items, "count": len(items)})
}
