package todos

import (
	"fmt"
	"strings"
	"time"

	"github.com/planloop/planloop-backend/internal/resource"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Todo struct {
	resource.Base
	Title       string     `gorm:"size:300;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Completed   bool       `gorm:"not null;index" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	Priority    string     `gorm:"size:10;not null" json:"priority"`
}

func (Todo) TableName() string { return "todos" }

func validPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func (t *Todo) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
}

func (t *Todo) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", resource.ErrValidation)
	}
	if !validPriority(t.Priority) {
		return fmt.Errorf("%w: priority must be low, medium or high", resource.ErrValidation)
	}
	return nil
}

func (t *Todo) ApplyPatch(patch map[string]interface{}) error {
	if v, ok := patch["title"]; ok {
		s, _ := v.(string)
		s = strings.TrimSpace(s)
		if s == "" {
			return fmt.Errorf("%w: title is required", resource.ErrValidation)
		}
		t.Title = s
	}
	if v, ok := patch["description"]; ok {
		s, _ := v.(string)
		t.Description = strings.TrimSpace(s)
	}
	if v, ok := patch["priority"]; ok {
		s, _ := v.(string)
		if !validPriority(s) {
			return fmt.Errorf("%w: priority must be low, medium or high", resource.ErrValidation)
		}
		t.Priority = s
	}
	// completedAt tracks any completed value present in the patch, not just
	// actual transitions.
	if v, ok := patch["completed"]; ok {
		done, _ := v.(bool)
		t.Completed = done
		if done {
			now := time.Now().UTC()
			t.CompletedAt = &now
		} else {
			t.CompletedAt = nil
		}
	}
	return nil
}
