package resource

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/planloop/planloop-backend/internal/dto"
)

// Handler exposes a Service over the shared collection route contract.
type Handler[T any, PT interface {
	*T
	Entity
}] struct {
	svc         *Service[T, PT]
	defaultUser string
}

func NewHandler[T any, PT interface {
	*T
	Entity
}](svc *Service[T, PT], defaultUser string) *Handler[T, PT] {
	return &Handler[T, PT]{svc: svc, defaultUser: defaultUser}
}

// Register mounts the collection routes on the given router group.
func (h *Handler[T, PT]) Register(router fiber.Router, path string) {
	g := router.Group(path)
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Post("/bulk", h.BulkImport)
	g.Get("/:id", h.Get)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

// userID resolves the partition key: body value, then query parameter,
// then the configured default identity.
func (h *Handler[T, PT]) userID(c *fiber.Ctx, bodyUser string) string {
	if bodyUser != "" {
		return bodyUser
	}
	if q := c.Query("userId"); q != "" {
		return q
	}
	return h.defaultUser
}

func (h *Handler[T, PT]) List(c *fiber.Ctx) error {
	userID := h.userID(c, "")

	var status *bool
	if f := h.svc.Descriptor().StatusField; f != "" {
		switch c.Query(f) {
		case "true":
			v := true
			status = &v
		case "false":
			v := false
			status = &v
		}
	}

	items, err := h.svc.List(userID, c.Query("search"), status)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list "+h.svc.Descriptor().Name)
	}
	return c.JSON(dto.OK(items))
}

func (h *Handler[T, PT]) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid id"))
	}

	item, err := h.svc.Get(h.userID(c, ""), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error()))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch record")
	}
	return c.JSON(dto.OK(item))
}

func (h *Handler[T, PT]) Create(c *fiber.Ctx) error {
	var item T
	p := PT(&item)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid request body"))
	}

	if err := h.svc.Create(h.userID(c, p.GetUserID()), p); err != nil {
		if errors.Is(err, ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create record")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(p))
}

func (h *Handler[T, PT]) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid id"))
	}

	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid request body"))
	}

	bodyUser, _ := patch["userId"].(string)
	item, err := h.svc.Update(h.userID(c, bodyUser), id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error()))
		}
		if errors.Is(err, ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update record")
	}
	return c.JSON(dto.OK(item))
}

func (h *Handler[T, PT]) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid id"))
	}

	if err := h.svc.Delete(h.userID(c, ""), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error()))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete record")
	}
	return c.JSON(dto.OK(fiber.Map{"deleted": true}))
}

// BulkRequest is the batch import payload shared by all collections.
type BulkRequest struct {
	UserID  string                   `json:"userId"`
	Entries []map[string]interface{} `json:"entries"`
}

func (h *Handler[T, PT]) BulkImport(c *fiber.Ctx) error {
	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid request body"))
	}
	if len(req.Entries) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("entries are required"))
	}

	count, err := h.svc.BulkImport(h.userID(c, req.UserID), req.Entries)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "bulk import failed")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BulkResponse{Success: true, Count: count})
}
