package handler

import (
	"bakery-backoffice/internal/model"
	"bakery-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// GET /api/inventory?username=
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems(c.Query("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in model.InventoryItemInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, errInvalidJSON)
	}
	item, err := h.service.CreateItem(&in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	id, err := parseID(c, "inventory item")
	if err != nil {
		return respondError(c, err)
	}
	item, err := h.service.GetItem(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// PUT and PATCH /api/inventory/:id
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := parseID(c, "inventory item")
	if err != nil {
		return respondError(c, err)
	}
	var in model.InventoryItemInput
	err = bindInput(c, &in, func() (model.InventoryItemInput, error) {
		item, err := h.service.GetItem(id)
		if err != nil {
			return in, err
		}
		return item.Input(), nil
	})
	if err != nil {
		return respondError(c, err)
	}
	item, err := h.service.UpdateItem(id, &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := parseID(c, "inventory item")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteItem(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/transactions?product=
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	product, err := queryID(c, "product")
	if err != nil {
		return respondError(c, err)
	}
	txs, err := h.service.ListTransactions(product)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(txs)
}

func (h *InventoryHandler) CreateTransaction(c *fiber.Ctx) error {
	var in model.InventoryTransactionInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, errInvalidJSON)
	}
	tx, err := h.service.RecordTransaction(&in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

func (h *InventoryHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseID(c, "transaction")
	if err != nil {
		return respondError(c, err)
	}
	tx, err := h.service.GetTransaction(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tx)
}

func (h *InventoryHandler) UpdateTransaction(c *fiber.Ctx) error {
	id, err := parseID(c, "transaction")
	if err != nil {
		return respondError(c, err)
	}
	var in model.InventoryTransactionInput
	err = bindInput(c, &in, func() (model.InventoryTransactionInput, error) {
		tx, err := h.service.GetTransaction(id)
		if err != nil {
			return in, err
		}
		return tx.Input(), nil
	})
	if err != nil {
		return respondError(c, err)
	}
	tx, err := h.service.UpdateTransaction(id, &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tx)
}

func (h *InventoryHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := parseID(c, "transaction")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteTransaction(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/historical-data
func (h *InventoryHandler) HistoricalData(c *fiber.Ctx) error {
	points, err := h.service.History()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(points)
}
