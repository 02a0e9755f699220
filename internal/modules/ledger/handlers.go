package ledger

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/planloop/planloop-backend/internal/dto"
	"github.com/planloop/planloop-backend/internal/resource"
)

type Handler struct {
	service     *Service
	defaultUser string
}

func NewHandler(service *Service, defaultUser string) *Handler {
	return &Handler{service: service, defaultUser: defaultUser}
}

func (h *Handler) userID(c *fiber.Ctx, bodyUser string) string {
	if bodyUser != "" {
		return bodyUser
	}
	if q := c.Query("userId"); q != "" {
		return q
	}
	return h.defaultUser
}

func (h *Handler) List(c *fiber.Ctx) error {
	entries, err := h.service.List(h.userID(c, ""), c.Query("search"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list entries")
	}
	return c.JSON(dto.OK(entries))
}

func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid id"))
	}

	entry, err := h.service.Get(h.userID(c, ""), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error()))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch entry")
	}
	return c.JSON(dto.OK(entry))
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid request body"))
	}

	entry, err := h.service.Create(h.userID(c, req.UserID), req)
	if err != nil {
		if errors.Is(err, resource.ErrValidation) || errors.Is(err, ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create entry")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(entry))
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid id"))
	}

	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid request body"))
	}

	bodyUser, _ := patch["userId"].(string)
	entry, err := h.service.Update(h.userID(c, bodyUser), id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error()))
		}
		if errors.Is(err, resource.ErrValidation) || errors.Is(err, ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update entry")
	}
	return c.JSON(dto.OK(entry))
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid id"))
	}

	if err := h.service.Delete(h.userID(c, ""), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error()))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete entry")
	}
	return c.JSON(dto.OK(fiber.Map{"deleted": true}))
}

func (h *Handler) ApplyPayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid id"))
	}

	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid request body"))
	}

	entry, err := h.service.ApplyPayment(h.userID(c, req.UserID), id, req.Amount, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error()))
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrPaymentExceedsBalance):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
		case errors.Is(err, ErrConcurrentUpdate):
			return c.Status(fiber.StatusConflict).JSON(dto.Fail(err.Error()))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to apply payment")
	}
	return c.JSON(dto.OK(entry))
}

// BulkImport shares the batch contract of the other collections.
func (h *Handler) BulkImport(c *fiber.Ctx) error {
	var req resource.BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid request body"))
	}
	if len(req.Entries) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("entries are required"))
	}

	count, err := h.service.BulkImport(h.userID(c, req.UserID), req.Entries)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "bulk import failed")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BulkResponse{Success: true, Count: count})
}
