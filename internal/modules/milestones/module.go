package milestones

import (
	"github.com/gofiber/fiber/v2"
	"github.com/planloop/planloop-backend/internal/config"
	"github.com/planloop/planloop-backend/internal/resource"
	"gorm.io/gorm"
)

var descriptor = resource.Descriptor{
	Name:         "milestones",
	SearchFields: []string{"title", "description"},
}

type MilestonesModule struct{}

func New() *MilestonesModule {
	return &MilestonesModule{}
}

func (m *MilestonesModule) ID() string { return "milestones" }

func (m *MilestonesModule) Models() []interface{} {
	return []interface{}{&Milestone{}}
}

func (m *MilestonesModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := resource.NewService[Milestone, *Milestone](db, descriptor)
	handler := resource.NewHandler(svc, cfg.DefaultUserID)
	handler.Register(router, "/milestones")
}
