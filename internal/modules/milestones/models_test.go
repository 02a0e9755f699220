package milestones

import (
	"testing"

	"github.com/planloop/planloop-backend/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaultsConfidence(t *testing.T) {
	m := Milestone{Title: " Ship v1 "}
	m.Normalize()

	assert.Equal(t, "Ship v1", m.Title)
	assert.Equal(t, 5, m.Confidence)
}

func TestValidateConfidenceBounds(t *testing.T) {
	for _, conf := range []int{-1, 11, 100} {
		m := Milestone{Title: "x", Confidence: conf}
		require.ErrorIs(t, m.Validate(), resource.ErrValidation, "confidence %d", conf)
	}

	m := Milestone{Title: "x", Confidence: 10}
	require.NoError(t, m.Validate())
}

func TestApplyPatchRevalidatesConfidence(t *testing.T) {
	m := Milestone{Title: "Ship v1", Confidence: 5}

	require.ErrorIs(t, m.ApplyPatch(map[string]interface{}{"confidence": float64(0)}), resource.ErrValidation)
	require.ErrorIs(t, m.ApplyPatch(map[string]interface{}{"confidence": "high"}), resource.ErrValidation)

	require.NoError(t, m.ApplyPatch(map[string]interface{}{"confidence": float64(8)}))
	assert.Equal(t, 8, m.Confidence)
}
