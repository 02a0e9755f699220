package daily

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Record is one day's submission for one user. A record is a draft until it
// is submitted; a submitted record is locked against the normal update paths.
type Record struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date   string    `gorm:"size:10;not null;uniqueIndex:idx_daily_date_user" json:"date"`
	UserID string    `gorm:"size:100;not null;uniqueIndex:idx_daily_date_user;index" json:"userId"`

	Submitted bool `gorm:"not null;index" json:"submitted"`

	// Aggregate counters are caller-computed and stored verbatim,
	// never recomputed server-side.
	Stats datatypes.JSON `gorm:"type:jsonb" json:"stats"`

	// Caller-defined item sequences, stored and returned without
	// interpreting their structure.
	Planner    datatypes.JSON `gorm:"type:jsonb" json:"planner"`
	Habits     datatypes.JSON `gorm:"type:jsonb" json:"habits"`
	Learning   datatypes.JSON `gorm:"type:jsonb" json:"learning"`
	Queries    datatypes.JSON `gorm:"type:jsonb" json:"queries"`
	Milestones datatypes.JSON `gorm:"type:jsonb" json:"milestones"`

	Reflection string `gorm:"type:text" json:"reflection"`
	Goal       string `gorm:"type:text" json:"goal"`
	CycleDay   int    `gorm:"not null" json:"cycleDay"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Record) TableName() string { return "daily_records" }

// RecordPayload is the caller-supplied day snapshot. Pointer fields
// distinguish "absent" from zero values so partial payloads only touch what
// they carry.
type RecordPayload struct {
	Date       string         `json:"date"`
	UserID     string         `json:"userId"`
	Submitted  *bool          `json:"submitted"`
	Stats      datatypes.JSON `json:"stats"`
	Planner    datatypes.JSON `json:"planner"`
	Habits     datatypes.JSON `json:"habits"`
	Learning   datatypes.JSON `json:"learning"`
	Queries    datatypes.JSON `json:"queries"`
	Milestones datatypes.JSON `json:"milestones"`
	Reflection *string        `json:"reflection"`
	Goal       *string        `json:"goal"`
	CycleDay   *int           `json:"cycleDay"`
}

// toRecord builds the insert-path row for an upsert.
func (p *RecordPayload) toRecord(userID, date string) *Record {
	rec := &Record{
		ID:         uuid.New(),
		Date:       date,
		UserID:     userID,
		Stats:      p.Stats,
		Planner:    p.Planner,
		Habits:     p.Habits,
		Learning:   p.Learning,
		Queries:    p.Queries,
		Milestones: p.Milestones,
		CycleDay:   1,
	}
	if p.Submitted != nil {
		rec.Submitted = *p.Submitted
	}
	if p.Reflection != nil {
		rec.Reflection = *p.Reflection
	}
	if p.Goal != nil {
		rec.Goal = *p.Goal
	}
	if p.CycleDay != nil {
		rec.CycleDay = *p.CycleDay
	}
	return rec
}

// assignments builds the conflict-path column set: only fields present in
// the payload overwrite the stored draft.
func (p *RecordPayload) assignments() map[string]interface{} {
	assign := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if p.Stats != nil {
		assign["stats"] = p.Stats
	}
	if p.Planner != nil {
		assign["planner"] = p.Planner
	}
	if p.Habits != nil {
		assign["habits"] = p.Habits
	}
	if p.Learning != nil {
		assign["learning"] = p.Learning
	}
	if p.Queries != nil {
		assign["queries"] = p.Queries
	}
	if p.Milestones != nil {
		assign["milestones"] = p.Milestones
	}
	if p.Reflection != nil {
		assign["reflection"] = *p.Reflection
	}
	if p.Goal != nil {
		assign["goal"] = *p.Goal
	}
	if p.CycleDay != nil {
		assign["cycle_day"] = *p.CycleDay
	}
	return assign
}
