package daily

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/planloop/planloop-backend/internal/dto"
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

func (h *Handler) GetToday(c *fiber.Ctx) error {
	rec, err := h.service.GetToday(h.userID(c, ""))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch today's record")
	}
	return c.JSON(dto.OK(rec))
}

func (h *Handler) ListRecent(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	recs, err := h.service.ListRecent(h.userID(c, ""), limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list records")
	}
	return c.JSON(dto.OK(recs))
}

func (h *Handler) GetByDate(c *fiber.Ctx) error {
	rec, err := h.service.GetByDate(h.userID(c, ""), c.Params("date"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch record")
	}
	return c.JSON(dto.OK(rec))
}

func (h *Handler) Autosave(c *fiber.Ctx) error {
	var p RecordPayload
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid request body"))
	}

	rec, err := h.service.Autosave(h.userID(c, p.UserID), p.Date, &p)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "autosave failed")
	}
	return c.JSON(dto.OK(rec))
}

func (h *Handler) Submit(c *fiber.Ctx) error {
	var p RecordPayload
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid request body"))
	}

	rec, err := h.service.Submit(h.userID(c, p.UserID), p.Date, &p)
	if err != nil {
		if errors.Is(err, ErrAlreadySubmitted) || errors.Is(err, ErrInvalidDate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "submit failed")
	}
	return c.JSON(dto.OK(rec))
}

func (h *Handler) Update(c *fiber.Ctx) error {
	var p RecordPayload
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid request body"))
	}

	rec, err := h.service.Update(h.userID(c, p.UserID), c.Params("date"), &p)
	if err != nil {
		if errors.Is(err, ErrAlreadySubmitted) || errors.Is(err, ErrInvalidDate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "update failed")
	}
	return c.JSON(dto.OK(rec))
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteByDate(h.userID(c, ""), c.Params("date")); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "delete failed")
	}
	return c.JSON(dto.OK(fiber.Map{"deleted": true}))
}
