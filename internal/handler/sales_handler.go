package handler

import (
	"bakery-backoffice/internal/model"
	"bakery-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SalesHandler serves sale stocks, sales and sale stock transactions.
type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

func (h *SalesHandler) ListStocks(c *fiber.Ctx) error {
	stocks, err := h.service.ListStocks(c.Query("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stocks)
}

// CreateStock also records an Addition transaction for the new stock.
func (h *SalesHandler) CreateStock(c *fiber.Ctx) error {
	var in model.SaleStockInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, errInvalidJSON)
	}
	stock, err := h.service.CreateStock(&in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stock)
}

func (h *SalesHandler) GetStock(c *fiber.Ctx) error {
	id, err := parseID(c, "sale stock")
	if err != nil {
		return respondError(c, err)
	}
	stock, err := h.service.GetStock(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stock)
}

// UpdateStock also records an Update transaction.
func (h *SalesHandler) UpdateStock(c *fiber.Ctx) error {
	id, err := parseID(c, "sale stock")
	if err != nil {
		return respondError(c, err)
	}
	var in model.SaleStockInput
	err = bindInput(c, &in, func() (model.SaleStockInput, error) {
		stock, err := h.service.GetStock(id)
		if err != nil {
			return in, err
		}
		return stock.Input(), nil
	})
	if err != nil {
		return respondError(c, err)
	}
	stock, err := h.service.UpdateStock(id, &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stock)
}

func (h *SalesHandler) DeleteStock(c *fiber.Ctx) error {
	id, err := parseID(c, "sale stock")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteStock(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SalesHandler) ListSales(c *fiber.Ctx) error {
	sales, err := h.service.ListSales(c.Query("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

func (h *SalesHandler) CreateSale(c *fiber.Ctx) error {
	var in model.SaleInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, errInvalidJSON)
	}
	sale, err := h.service.CreateSale(&in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

func (h *SalesHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseID(c, "sale")
	if err != nil {
		return respondError(c, err)
	}
	sale, err := h.service.GetSale(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

func (h *SalesHandler) UpdateSale(c *fiber.Ctx) error {
	id, err := parseID(c, "sale")
	if err != nil {
		return respondError(c, err)
	}
	var in model.SaleInput
	err = bindInput(c, &in, func() (model.SaleInput, error) {
		sale, err := h.service.GetSale(id)
		if err != nil {
			return in, err
		}
		return sale.Input(), nil
	})
	if err != nil {
		return respondError(c, err)
	}
	sale, err := h.service.UpdateSale(id, &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

func (h *SalesHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseID(c, "sale")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteSale(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/salesstocktransactions?sale_stock=
func (h *SalesHandler) ListStockTransactions(c *fiber.Ctx) error {
	stockID, err := queryID(c, "sale_stock")
	if err != nil {
		return respondError(c, err)
	}
	txs, err := h.service.ListStockTransactions(stockID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(txs)
}

func (h *SalesHandler) CreateStockTransaction(c *fiber.Ctx) error {
	var in model.SaleStockTransactionInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, errInvalidJSON)
	}
	t, err := h.service.CreateStockTransaction(&in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *SalesHandler) GetStockTransaction(c *fiber.Ctx) error {
	id, err := parseID(c, "sale stock transaction")
	if err != nil {
		return respondError(c, err)
	}
	t, err := h.service.GetStockTransaction(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(t)
}

func (h *SalesHandler) UpdateStockTransaction(c *fiber.Ctx) error {
	id, err := parseID(c, "sale stock transaction")
	if err != nil {
		return respondError(c, err)
	}
	var in model.SaleStockTransactionInput
	err = bindInput(c, &in, func() (model.SaleStockTransactionInput, error) {
		t, err := h.service.GetStockTransaction(id)
		if err != nil {
			return in, err
		}
		return t.Input(), nil
	})
	if err != nil {
		return respondError(c, err)
	}
	t, err := h.service.UpdateStockTransaction(id, &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(t)
}

func (h *SalesHandler) DeleteStockTransaction(c *fiber.Ctx) error {
	id, err := parseID(c, "sale stock transaction")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteStockTransaction(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
