package handler

import (
	"go-factory-console/internal/middleware"
	"go-factory-console/internal/model"
	"go-factory-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service  service.InventoryService
	pageSize int
}

func NewInventoryHandler(s service.InventoryService, pageSize int) *InventoryHandler {
	return &InventoryHandler{service: s, pageSize: pageSize}
}

// GetInventory returns the inventory screen.
// Query params: page-number, page-size, q, status, category
func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	view := h.service.Screen(middleware.Token(c), listParams(c, h.pageSize), searchQuery(c))
	return c.JSON(view)
}

func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.service.Detail(middleware.Token(c), idParam(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var item model.StockItem
	if err := decodeInto(c, &item); err != nil {
		return respondError(c, err)
	}

	created, err := h.service.Create(middleware.Token(c), item)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateItem applies a full or partial payload to an item.
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	item, err := h.service.Update(middleware.Token(c), idParam(c), func(item *model.StockItem) error {
		return decodeInto(c, item)
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.Token(c), idParam(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type reserveRequest struct {
	Quantity model.Int `json:"quantity"`
}

// ReserveItem sets units of an item aside.
// Body: {"quantity": 10}
func (h *InventoryHandler) ReserveItem(c *fiber.Ctx) error {
	var req reserveRequest
	if err := decodeInto(c, &req); err != nil {
		return respondError(c, err)
	}

	item, err := h.service.Reserve(middleware.Token(c), idParam(c), int(req.Quantity))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}
