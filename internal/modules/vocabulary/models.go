package vocabulary

import (
	"fmt"
	"strings"

	"github.com/planloop/planloop-backend/internal/resource"
)

// Word is one vocabulary entry.
type Word struct {
	resource.Base
	Word    string `gorm:"size:200;not null" json:"word"`
	Meaning string `gorm:"type:text" json:"meaning"`
	Example string `gorm:"type:text" json:"example"`
	Notes   string `gorm:"type:text" json:"notes"`
}

func (Word) TableName() string { return "vocabulary_words" }

func (w *Word) Normalize() {
	w.Word = strings.TrimSpace(w.Word)
	w.Meaning = strings.TrimSpace(w.Meaning)
	w.Example = strings.TrimSpace(w.Example)
	w.Notes = strings.TrimSpace(w.Notes)
}

func (w *Word) Validate() error {
	if w.Word == "" {
		return fmt.Errorf("%w: word is required", resource.ErrValidation)
	}
	return nil
}

func (w *Word) ApplyPatch(patch map[string]interface{}) error {
	if v, ok := patch["word"]; ok {
		s, _ := v.(string)
		s = strings.TrimSpace(s)
		if s == "" {
			return fmt.Errorf("%w: word is required", resource.ErrValidation)
		}
		w.Word = s
	}
	if v, ok := patch["meaning"]; ok {
		s, _ := v.(string)
		w.Meaning = strings.TrimSpace(s)
	}
	if v, ok := patch["example"]; ok {
		s, _ := v.(string)
		w.Example = strings.TrimSpace(s)
	}
	if v, ok := patch["notes"]; ok {
		s, _ := v.(string)
		w.Notes = strings.TrimSpace(s)
	}
	return nil
}
