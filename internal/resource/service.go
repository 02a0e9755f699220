package resource

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/planloop/planloop-backend/internal/metrics"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrValidation = errors.New("validation failed")
)

// Service is the collection data-access layer shared by every flat entity.
// PT is the pointer type of T and must satisfy Entity.
type Service[T any, PT interface {
	*T
	Entity
}] struct {
	db   *gorm.DB
	desc Descriptor
}

func NewService[T any, PT interface {
	*T
	Entity
}](db *gorm.DB, desc Descriptor) *Service[T, PT] {
	return &Service[T, PT]{db: db, desc: desc}
}

func (s *Service[T, PT]) Descriptor() Descriptor { return s.desc }

// SearchScope builds a case-insensitive substring OR-match across columns.
func SearchScope(columns []string, query string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(columns) == 0 || query == "" {
			return db
		}
		pattern := "%" + query + "%"
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			conds[i] = col + " ILIKE ?"
			args[i] = pattern
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// List returns the user's documents, newest first. An optional search term
// expands to an OR-match across the descriptor's search fields; an optional
// status value filters on the descriptor's status column.
func (s *Service[T, PT]) List(userID, search string, status *bool) ([]T, error) {
	q := s.db.Where("user_id = ?", userID)
	if search != "" {
		q = q.Scopes(SearchScope(s.desc.SearchFields, search))
	}
	if status != nil && s.desc.StatusField != "" {
		q = q.Where(s.desc.StatusField+" = ?", *status)
	}

	var items []T
	if err := q.Order("date_added DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service[T, PT]) Get(userID string, id uuid.UUID) (PT, error) {
	var item T
	err := s.db.Where("user_id = ?", userID).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return PT(&item), nil
}

// Create validates the document before any write and stamps id, owner and
// insertion time server-side.
func (s *Service[T, PT]) Create(userID string, item PT) error {
	item.Normalize()
	if err := item.Validate(); err != nil {
		return err
	}

	item.SetID(uuid.New())
	item.SetUserID(userID)
	item.SetDateAdded(time.Now().UTC())

	return s.db.Create(item).Error
}

// Update replaces only the fields present in the patch.
func (s *Service[T, PT]) Update(userID string, id uuid.UUID, patch map[string]interface{}) (PT, error) {
	item, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if err := item.ApplyPatch(patch); err != nil {
		return nil, err
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service[T, PT]) Delete(userID string, id uuid.UUID) error {
	res := s.db.Where("user_id = ? AND id = ?", userID, id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkImport maps each raw entry into the entity shape with the same
// defaulting as Create, silently drops entries failing validation, and
// inserts the remainder best-effort: one bad row never blocks its siblings.
// Returns the count actually inserted.
func (s *Service[T, PT]) BulkImport(userID string, entries []map[string]interface{}) (int, error) {
	inserted := 0
	for _, raw := range entries {
		var item T
		p := PT(&item)
		if err := decodeEntry(raw, p); err != nil {
			continue
		}
		p.Normalize()
		if err := p.Validate(); err != nil {
			continue
		}

		p.SetID(uuid.New())
		p.SetUserID(userID)
		p.SetDateAdded(time.Now().UTC())

		if err := s.db.Create(p).Error; err != nil {
			slog.Warn("bulk import row failed", "module", s.desc.Name, "error", err)
			continue
		}
		inserted++
	}

	metrics.BulkImportedRows.WithLabelValues(s.desc.Name).Add(float64(inserted))
	return inserted, nil
}

func decodeEntry(raw map[string]interface{}, out interface{}) error {
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
