package sections

import (
	"testing"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpandsAll(t *testing.T) {
	set, err := Parse("gene", []string{"all"})
	require.NoError(t, err)
	for _, name := range Vocabulary("gene") {
		assert.True(t, set.Has(name), name)
	}
}

func TestParseRejectsUnknownSection(t *testing.T) {
	_, err := Parse("gene", []string{"bogus"})
	require.Error(t, err)
	assert.True(t, biomcperr.IsKind(err, biomcperr.KindInvalidArgument))
}

func TestParseRejectsUnknownKind(t *testing.T) {
	_, err := Parse("spaceship", []string{"all"})
	require.Error(t, err)
}

func TestParseEmptySelection(t *testing.T) {
	set, err := Parse("variant", nil)
	require.NoError(t, err)
	assert.False(t, set.Has("clinvar"))
}

func TestParseCaseInsensitive(t *testing.T) {
	set, err := Parse("drug", []string{"LABEL", " Shortage "})
	require.NoError(t, err)
	assert.True(t, set.Has("label"))
	assert.True(t, set.Has("shortage"))
}

func TestParseIgnoresJSONFlagPassthrough(t *testing.T) {
	set, err := Parse("variant", []string{"clinvar", "--json", "-j"})
	require.NoError(t, err)
	assert.True(t, set.Has("clinvar"))
	assert.Len(t, set, 1)
}

func TestVariantVocabularyMatchesCanonicalSet(t *testing.T) {
	want := []string{"cbioportal", "cgi", "civic", "clinvar", "conservation",
		"cosmic", "gwas", "population", "predict", "predictions"}
	assert.ElementsMatch(t, want, Vocabulary("variant"))
}
