package handler

import (
	"bakery-backoffice/internal/model"
	"bakery-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AuditHandler serves the append-only audit log.
type AuditHandler struct {
	service service.AuditService
}

func NewAuditHandler(s service.AuditService) *AuditHandler {
	return &AuditHandler{service: s}
}

func (h *AuditHandler) List(c *fiber.Ctx) error {
	entries, err := h.service.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

func (h *AuditHandler) Create(c *fiber.Ctx) error {
	var in model.AuditLogInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, errInvalidJSON)
	}
	entry, err := h.service.Create(&in, actorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *AuditHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "audit log")
	if err != nil {
		return respondError(c, err)
	}
	entry, err := h.service.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

// Update answers PUT and PATCH; entries cannot be changed once written.
func (h *AuditHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "audit log")
	if err != nil {
		return respondError(c, err)
	}
	return respondError(c, h.service.Update(id))
}

func (h *AuditHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "audit log")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
