package ledger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/planloop/planloop-backend/internal/config"
	"gorm.io/gorm"
)

type LedgerModule struct{}

func New() *LedgerModule {
	return &LedgerModule{}
}

func (m *LedgerModule) ID() string { return "money-tracker" }

func (m *LedgerModule) Models() []interface{} {
	return []interface{}{&Entry{}}
}

func (m *LedgerModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewService(db)
	handler := NewHandler(svc, cfg.DefaultUserID)

	g := router.Group("/money-tracker")
	g.Get("/", handler.List)
	g.Post("/", handler.Create)
	g.Post("/bulk", handler.BulkImport)
	g.Get("/:id", handler.Get)
	g.Put("/:id", handler.Update)
	g.Delete("/:id", handler.Delete)
	g.Post("/:id/payment", handler.ApplyPayment)
}
