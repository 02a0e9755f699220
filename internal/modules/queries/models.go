package queries

import (
	"fmt"
	"strings"

	"github.com/planloop/planloop-backend/internal/resource"
)

// Query is an open question captured during the day, optionally resolved later.
type Query struct {
	resource.Base
	Question string `gorm:"type:text;not null" json:"question"`
	Answer   string `gorm:"type:text" json:"answer"`
	Topic    string `gorm:"size:100" json:"topic"`
	Resolved bool   `gorm:"not null;index" json:"resolved"`
}

func (Query) TableName() string { return "queries" }

func (q *Query) Normalize() {
	q.Question = strings.TrimSpace(q.Question)
	q.Answer = strings.TrimSpace(q.Answer)
	q.Topic = strings.TrimSpace(q.Topic)
}

func (q *Query) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("%w: question is required", resource.ErrValidation)
	}
	return nil
}

func (q *Query) ApplyPatch(patch map[string]interface{}) error {
	if v, ok := patch["question"]; ok {
		s, _ := v.(string)
		s = strings.TrimSpace(s)
		if s == "" {
			return fmt.Errorf("%w: question is required", resource.ErrValidation)
		}
		q.Question = s
	}
	if v, ok := patch["answer"]; ok {
		s, _ := v.(string)
		q.Answer = strings.TrimSpace(s)
	}
	if v, ok := patch["topic"]; ok {
		s, _ := v.(string)
		q.Topic = strings.TrimSpace(s)
	}
	if v, ok := patch["resolved"]; ok {
		b, _ := v.(bool)
		q.Resolved = b
	}
	return nil
}
