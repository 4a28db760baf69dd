package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDiseaseScorePenalizesSubtypeAsymmetrically(t *testing.T) {
	broad := ResolveDiseaseScore("breast cancer", "breast cancer")
	subtypeOnCandidate := ResolveDiseaseScore("breast cancer", "hereditary breast cancer")
	subtypeOnQuery := ResolveDiseaseScore("hereditary breast cancer", "breast cancer")

	assert.Equal(t, 100, broad-subtypeOnCandidate)
	assert.Equal(t, 80, broad-subtypeOnQuery)
}

func TestResolveDiseaseScoreCarcinomaCancerFallback(t *testing.T) {
	assert.Positive(t, ResolveDiseaseScore("lung carcinoma", "lung cancer"))
}

func TestHasSubtypeMarkerRecognizesTypeNQualifier(t *testing.T) {
	assert.True(t, hasSubtypeMarker("diabetes mellitus type 2"))
	assert.False(t, hasSubtypeMarker("diabetes mellitus"))
}
