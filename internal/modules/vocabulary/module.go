package vocabulary

import (
	"github.com/gofiber/fiber/v2"
	"github.com/planloop/planloop-backend/internal/config"
	"github.com/planloop/planloop-backend/internal/resource"
	"gorm.io/gorm"
)

var descriptor = resource.Descriptor{
	Name:         "vocabulary",
	SearchFields: []string{"word", "meaning", "example"},
}

type VocabularyModule struct{}

func New() *VocabularyModule {
	return &VocabularyModule{}
}

func (m *VocabularyModule) ID() string { return "vocabulary" }

func (m *VocabularyModule) Models() []interface{} {
	return []interface{}{&Word{}}
}

func (m *VocabularyModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := resource.NewService[Word, *Word](db, descriptor)
	handler := resource.NewHandler(svc, cfg.DefaultUserID)
	handler.Register(router, "/vocabulary")
}
