package todos

import (
	"github.com/gofiber/fiber/v2"
	"github.com/planloop/planloop-backend/internal/config"
	"github.com/planloop/planloop-backend/internal/resource"
	"gorm.io/gorm"
)

var descriptor = resource.Descriptor{
	Name:         "todos",
	SearchFields: []string{"title", "description"},
	StatusField:  "completed",
}

type TodosModule struct{}

func New() *TodosModule {
	return &TodosModule{}
}

func (m *TodosModule) ID() string { return "todos" }

func (m *TodosModule) Models() []interface{} {
	return []interface{}{&Todo{}}
}

func (m *TodosModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := resource.NewService[Todo, *Todo](db, descriptor)
	handler := resource.NewHandler(svc, cfg.DefaultUserID)
	handler.Register(router, "/todos")
}
