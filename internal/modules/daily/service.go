package daily

import (
	"errors"
	"fmt"
	"time"

	"github.com/planloop/planloop-backend/internal/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

var (
	ErrAlreadySubmitted = errors.New("daily record already submitted")
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
)

// Service governs the per-day submission state machine: a day is a draft
// until submitted, and a submitted day rejects the normal mutation paths.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func validDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// conflictTarget is the compound key one record exists per.
var conflictTarget = []clause.Column{{Name: "date"}, {Name: "user_id"}}

// notSubmitted restricts a conflict update to draft rows, which makes the
// check-and-write a single atomic statement instead of a racy read-then-write.
var notSubmitted = clause.Where{Exprs: []clause.Expression{
	clause.Eq{Column: clause.Column{Table: "daily_records", Name: "submitted"}, Value: false},
}}

// GetByDate returns the record for the date, or nil when absent.
func (s *Service) GetByDate(userID, date string) (*Record, error) {
	var rec Record
	err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetToday delegates to GetByDate with the server's local calendar date.
func (s *Service) GetToday(userID string) (*Record, error) {
	return s.GetByDate(userID, time.Now().Format(dateLayout))
}

// ListRecent returns records sorted by date descending, capped at limit.
func (s *Service) ListRecent(userID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 100
	}
	var recs []Record
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Autosave upserts the payload unconditionally and always stores the day as
// a draft. This deliberately flips an already-finalized day back to draft,
// matching the long-observed autosave behavior the frontend depends on.
func (s *Service) Autosave(userID, date string, p *RecordPayload) (*Record, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}

	rec := p.toRecord(userID, date)
	rec.Submitted = false
	assign := p.assignments()
	assign["submitted"] = false

	res := s.db.Clauses(clause.OnConflict{
		Columns:   conflictTarget,
		DoUpdates: clause.Assignments(assign),
	}).Create(rec)
	if res.Error != nil {
		return nil, res.Error
	}

	metrics.DailyAutosaves.Inc()
	return s.GetByDate(userID, date)
}

// Update upserts the payload for a draft day. The write is a single
// conditional statement: inserting, or updating only while the stored row is
// still a draft. Zero affected rows means the day was already finalized.
func (s *Service) Update(userID, date string, p *RecordPayload) (*Record, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}

	rec := p.toRecord(userID, date)
	assign := p.assignments()
	if p.Submitted != nil {
		assign["submitted"] = *p.Submitted
	}

	res := s.db.Clauses(clause.OnConflict{
		Columns:   conflictTarget,
		Where:     notSubmitted,
		DoUpdates: clause.Assignments(assign),
	}).Create(rec)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadySubmitted
	}

	return s.GetByDate(userID, date)
}

// Submit finalizes a day. This is the only path that transitions a draft to
// submitted; a second submit for the same day fails and writes nothing.
func (s *Service) Submit(userID, date string, p *RecordPayload) (*Record, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}

	rec := p.toRecord(userID, date)
	rec.Submitted = true
	assign := p.assignments()
	assign["submitted"] = true

	res := s.db.Clauses(clause.OnConflict{
		Columns:   conflictTarget,
		Where:     notSubmitted,
		DoUpdates: clause.Assignments(assign),
	}).Create(rec)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadySubmitted
	}

	metrics.DailySubmissions.Inc()
	return s.GetByDate(userID, date)
}

// DeleteByDate removes the record for the date. Deleting an absent record
// succeeds.
func (s *Service) DeleteByDate(userID, date string) error {
	return s.db.Where("user_id = ? AND date = ?", userID, date).Delete(&Record{}).Error
}
