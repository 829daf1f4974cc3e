package handler

import (
	"bakery-backoffice/internal/model"
	"bakery-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductionHandler struct {
	service service.ProductionService
}

func NewProductionHandler(s service.ProductionService) *ProductionHandler {
	return &ProductionHandler{service: s}
}

func (h *ProductionHandler) List(c *fiber.Ctx) error {
	recs, err := h.service.List(c.Query("username"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]model.ProductionRecordResponse, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].ToResponse())
	}
	return c.JSON(out)
}

func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in model.ProductionRecordInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, errInvalidJSON)
	}
	rec, err := h.service.Create(&in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec.ToResponse())
}

func (h *ProductionHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "production record")
	if err != nil {
		return respondError(c, err)
	}
	rec, err := h.service.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec.ToResponse())
}

func (h *ProductionHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "production record")
	if err != nil {
		return respondError(c, err)
	}
	var in model.ProductionRecordInput
	err = bindInput(c, &in, func() (model.ProductionRecordInput, error) {
		rec, err := h.service.Get(id)
		if err != nil {
			return in, err
		}
		return rec.Input(), nil
	})
	if err != nil {
		return respondError(c, err)
	}
	rec, err := h.service.Update(id, &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec.ToResponse())
}

func (h *ProductionHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "production record")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
