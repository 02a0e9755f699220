package resource

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the fields shared by every collection document: a generated
// identifier, the owning user partition, and the insertion timestamp.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"size:100;not null;index" json:"userId"`
	DateAdded time.Time `gorm:"index" json:"dateAdded"`
}

func (b *Base) GetID() uuid.UUID         { return b.ID }
func (b *Base) SetID(id uuid.UUID)       { b.ID = id }
func (b *Base) GetUserID() string        { return b.UserID }
func (b *Base) SetUserID(userID string)  { b.UserID = userID }
func (b *Base) SetDateAdded(t time.Time) { b.DateAdded = t }

// Entity is implemented by every collection model served by Service.
type Entity interface {
	GetID() uuid.UUID
	SetID(uuid.UUID)
	GetUserID() string
	SetUserID(string)
	SetDateAdded(time.Time)

	// Normalize trims text fields and applies entity defaults.
	Normalize()

	// Validate checks required fields and bounded values.
	Validate() error

	// ApplyPatch replaces only the fields present in the patch,
	// re-validating bounded values and running entity side effects.
	ApplyPatch(patch map[string]interface{}) error
}

// Descriptor parameterizes Service per entity type.
type Descriptor struct {
	// Name identifies the collection in logs and metrics.
	Name string

	// SearchFields are the columns matched by case-insensitive substring search.
	SearchFields []string

	// StatusField is an optional boolean column filterable via a
	// "true"/"false" query parameter of the same name.
	StatusField string
}
