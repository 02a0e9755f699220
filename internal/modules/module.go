package modules

import (
	"github.com/gofiber/fiber/v2"
	"github.com/planloop/planloop-backend/internal/config"
	"gorm.io/gorm"
)

// Module defines the interface every collection module must implement.
type Module interface {
	// ID returns the unique module identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts module-specific routes on the given Fiber group.
	// The group is already prefixed with /api.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
