package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "rewear/internal/log"
	"rewear/internal/services"
	"rewear/internal/validate"
)

type SwapHandler struct {
	Swaps *services.SwapService
}

// Request handles POST /api/v1/items/:id/swap.
func (h *SwapHandler) Request(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "item not found")
	}
	req, err := h.Swaps.RequestSwap(id, currentUser(c))
	if err != nil {
		return swapFailure(c, "swap.request.fail", err)
	}
	applog.Audit(c, "swap.request", map[string]any{"swap_id": req.ID, "item_id": id})
	return c.Status(fiber.StatusCreated).JSON(req)
}

// Redeem handles POST /api/v1/items/:id/redeem.
func (h *SwapHandler) Redeem(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "item not found")
	}
	res, err := h.Swaps.Redeem(id, currentUser(c))
	if err != nil {
		return swapFailure(c, "swap.redeem.fail", err)
	}
	applog.Audit(c, "swap.redeem", map[string]any{"item_id": id, "new_balance": res.NewBalance})
	return c.JSON(fiber.Map{"item": res.Item, "newBalance": res.NewBalance})
}

func (h *SwapHandler) Outgoing(c *fiber.Ctx) error {
	reqs, err := h.Swaps.Outgoing(currentUser(c))
	if err != nil {
		applog.Error(c, "swap.outgoing.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load requests")
	}
	return c.JSON(fiber.Map{"requests": reqs, "count": len(reqs)})
}

func (h *SwapHandler) Incoming(c *fiber.Ctx) error {
	reqs, err := h.Swaps.Incoming(currentUser(c))
	if err != nil {
		applog.Error(c, "swap.incoming.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load requests")
	}
	return c.JSON(fiber.Map{"requests": reqs, "count": len(reqs)})
}

// Approve handles POST /api/v1/swaps/:id/approve (listing owner only).
func (h *SwapHandler) Approve(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "request not found")
	}
	if err := h.Swaps.Approve(id, currentUser(c)); err != nil {
		return swapFailure(c, "swap.approve.fail", err)
	}
	applog.Audit(c, "swap.approve", map[string]any{"swap_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// Reject handles POST /api/v1/swaps/:id/reject (listing owner only).
func (h *SwapHandler) Reject(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "request not found")
	}
	if err := h.Swaps.RejectRequest(id, currentUser(c)); err != nil {
		return swapFailure(c, "swap.reject.fail", err)
	}
	applog.Audit(c, "swap.reject", map[string]any{"swap_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// swapFailure maps workflow errors onto statuses: authorization failures
// are kept distinct from business-rule failures, and insufficient points
// carries the exact shortfall.
func swapFailure(c *fiber.Ctx, action string, err error) error {
	var short *services.InsufficientPointsError
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		return jsonError(c, fiber.StatusUnauthorized, "login required")
	case errors.Is(err, services.ErrSelfSwap):
		applog.Security(c, action, map[string]any{"reason": "self"})
		return jsonError(c, fiber.StatusForbidden, "you cannot swap or redeem your own listing")
	case errors.Is(err, services.ErrNotOwner):
		applog.Security(c, action, map[string]any{"reason": "not_owner"})
		return jsonError(c, fiber.StatusForbidden, "only the listing owner may do this")
	case errors.Is(err, services.ErrItemUnavailable):
		return jsonError(c, fiber.StatusConflict, "item is no longer available")
	case errors.Is(err, services.ErrDuplicateRequest):
		return jsonError(c, fiber.StatusConflict, "you already have a pending request for this item")
	case errors.Is(err, services.ErrNotPending):
		return jsonError(c, fiber.StatusConflict, "request already resolved")
	case errors.As(err, &short):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error":     "insufficient points",
			"shortfall": short.Shortfall,
		})
	}
	applog.Error(c, action, err, nil)
	return jsonError(c, fiber.StatusInternalServerError, "could not complete the action")
}
