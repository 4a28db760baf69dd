package substrate

import (
	"strings"
	"testing"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLucene(t *testing.T) {
	in := `braf v600e (exon 15) AND/OR "test"`
	out := EscapeLucene(in)
	for _, c := range luceneSpecial {
		if c == '&' || c == '|' {
			continue // only escaped in pairs
		}
		if strings.ContainsRune(in, c) {
			assert.Contains(t, out, `\`+string(c))
		}
	}
	assert.Contains(t, out, `\"test\"`)
}

func TestValidateBioThingsWindow(t *testing.T) {
	require.NoError(t, ValidateBioThingsWindow(0, 10))
	require.NoError(t, ValidateBioThingsWindow(9990, 10))

	err := ValidateBioThingsWindow(10000, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--offset")

	err = ValidateBioThingsWindow(9995, 10)
	require.Error(t, err)
	assert.True(t, biomcperr.IsKind(err, biomcperr.KindInvalidArgument))
}

func TestValidateSearchLimit(t *testing.T) {
	require.Error(t, ValidateSearchLimit(0))
	require.Error(t, ValidateSearchLimit(51))
	require.NoError(t, ValidateSearchLimit(1))
	require.NoError(t, ValidateSearchLimit(50))
}

func TestIsValidGeneSymbol(t *testing.T) {
	assert.True(t, IsValidGeneSymbol("BRAF"))
	assert.True(t, IsValidGeneSymbol("HLA-A"))
	assert.False(t, IsValidGeneSymbol(""))
	assert.False(t, IsValidGeneSymbol("BRAF!"))
}

func TestEnsureJSONContentType(t *testing.T) {
	require.Error(t, EnsureJSONContentType("mygene", "text/html; charset=utf-8", nil))
	require.Error(t, EnsureJSONContentType("mygene", "application/xhtml+xml", nil))
	require.NoError(t, EnsureJSONContentType("mygene", "application/json", nil))
}

func TestReadBodyCappedOverflow(t *testing.T) {
	big := strings.NewReader(strings.Repeat("a", MaxBodyBytes+10))
	_, err := ReadBodyCapped(big, "openfda")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeded")
}
