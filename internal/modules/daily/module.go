package daily

import (
	"github.com/gofiber/fiber/v2"
	"github.com/planloop/planloop-backend/internal/config"
	"gorm.io/gorm"
)

type DailyModule struct{}

func New() *DailyModule {
	return &DailyModule{}
}

func (m *DailyModule) ID() string { return "daily" }

func (m *DailyModule) Models() []interface{} {
	return []interface{}{&Record{}}
}

func (m *DailyModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewService(db)
	handler := NewHandler(svc, cfg.DefaultUserID)

	g := router.Group("/daily")
	g.Get("/today", handler.GetToday)
	g.Get("/all", handler.ListRecent)
	g.Post("/submit", handler.Submit)
	g.Post("/autosave", handler.Autosave)
	g.Get("/:date", handler.GetByDate)
	g.Put("/:date", handler.Update)
	g.Delete("/:date", handler.Delete)
}
