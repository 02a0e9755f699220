package queries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/planloop/planloop-backend/internal/config"
	"github.com/planloop/planloop-backend/internal/resource"
	"gorm.io/gorm"
)

var descriptor = resource.Descriptor{
	Name:         "queries",
	SearchFields: []string{"question", "answer"},
	StatusField:  "resolved",
}

type QueriesModule struct{}

func New() *QueriesModule {
	return &QueriesModule{}
}

func (m *QueriesModule) ID() string { return "queries" }

func (m *QueriesModule) Models() []interface{} {
	return []interface{}{&Query{}}
}

func (m *QueriesModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := resource.NewService[Query, *Query](db, descriptor)
	handler := resource.NewHandler(svc, cfg.DefaultUserID)
	handler.Register(router, "/queries")
}
