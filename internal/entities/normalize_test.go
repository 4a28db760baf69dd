package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGeneSymbol(t *testing.T) {
	assert.Equal(t, "BRAF", NormalizeGeneSymbol(" braf "))
}

func TestNormalizeRSID(t *testing.T) {
	norm, ok := NormalizeRSID("RS113488022")
	require.True(t, ok)
	assert.Equal(t, "rs113488022", norm)

	_, ok = NormalizeRSID("not-an-rsid")
	assert.False(t, ok)
}

func TestNormalizeDiseaseID(t *testing.T) {
	assert.Equal(t, "MONDO:0007254", NormalizeDiseaseID("mondo:0007254"))
	assert.Equal(t, "MONDO:0007254", NormalizeDiseaseID("MONDO0007254"))
	assert.Equal(t, "DOID:1612", NormalizeDiseaseID("doid:1612"))
}

func TestIsValidHPOID(t *testing.T) {
	assert.True(t, IsValidHPOID("HP:0001250"))
	assert.False(t, IsValidHPOID("0001250"))
}

func TestIsValidGenomicHGVS(t *testing.T) {
	assert.True(t, IsValidGenomicHGVS("chr7:g.140453136A>T"))
	assert.False(t, IsValidGenomicHGVS("NM_004333.4:c.1799T>A"))
}

func TestDedupStrings(t *testing.T) {
	in := []string{"BRAF", "braf", "KRAS", "", "kras", "NRAS"}
	out := DedupStrings(in, 2)
	assert.Equal(t, []string{"BRAF", "KRAS"}, out)
}

func TestClinicalSignificanceRank(t *testing.T) {
	assert.True(t, SignificancePathogenic.Rank() < SignificanceLikelyPathogenic.Rank())
	assert.True(t, SignificanceLikelyPathogenic.Rank() < SignificanceUncertain.Rank())
	assert.True(t, SignificanceUncertain.Rank() < SignificanceBenign.Rank())
}
