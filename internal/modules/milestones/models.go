package milestones

import (
	"fmt"
	"strings"

	"github.com/planloop/planloop-backend/internal/resource"
)

type Milestone struct {
	resource.Base
	Title       string `gorm:"size:300;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:100" json:"category"`
	// Confidence is a self-assessment on a 1-10 scale.
	Confidence int `gorm:"not null" json:"confidence"`
}

func (Milestone) TableName() string { return "milestones" }

func (m *Milestone) Normalize() {
	m.Title = strings.TrimSpace(m.Title)
	m.Description = strings.TrimSpace(m.Description)
	m.Category = strings.TrimSpace(m.Category)
	if m.Confidence == 0 {
		m.Confidence = 5
	}
}

func (m *Milestone) Validate() error {
	if m.Title == "" {
		return fmt.Errorf("%w: title is required", resource.ErrValidation)
	}
	if m.Confidence < 1 || m.Confidence > 10 {
		return fmt.Errorf("%w: confidence must be between 1 and 10", resource.ErrValidation)
	}
	return nil
}

func (m *Milestone) ApplyPatch(patch map[string]interface{}) error {
	if v, ok := patch["title"]; ok {
		s, _ := v.(string)
		s = strings.TrimSpace(s)
		if s == "" {
			return fmt.Errorf("%w: title is required", resource.ErrValidation)
		}
		m.Title = s
	}
	if v, ok := patch["description"]; ok {
		s, _ := v.(string)
		m.Description = strings.TrimSpace(s)
	}
	if v, ok := patch["category"]; ok {
		s, _ := v.(string)
		m.Category = strings.TrimSpace(s)
	}
	if v, ok := patch["confidence"]; ok {
		f, isNum := v.(float64)
		conf := int(f)
		if !isNum || conf < 1 || conf > 10 {
			return fmt.Errorf("%w: confidence must be between 1 and 10", resource.ErrValidation)
		}
		m.Confidence = conf
	}
	return nil
}
