package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func faersRowWithSuspects(suspects ...map[string]any) map[string]any {
	var drugs []any
	for _, s := range suspects {
		drugs = append(drugs, s)
	}
	return map[string]any{
		"patient": map[string]any{"drug": drugs},
	}
}

func TestFaersReportMatchesSuspectDrugQueryGenericName(t *testing.T) {
	row := faersRowWithSuspects(
		map[string]any{
			"drugcharacterization": "1",
			"medicinalproduct":     "TOFACITINIB",
		},
		map[string]any{
			"drugcharacterization": "1",
			"medicinalproduct":     "Metformin Hydrochloride",
		},
	)

	assert.True(t, FaersReportMatchesSuspectDrugQuery(row, "metformin"))
	assert.False(t, FaersReportMatchesSuspectDrugQuery(row, "pembrolizumab"))
}

func TestFaersReportMatchesSuspectDrugQueryIgnoresConcomitant(t *testing.T) {
	row := faersRowWithSuspects(map[string]any{
		"drugcharacterization": "1",
		"medicinalproduct":     "Tofacitinib",
	})
	drugs := row["patient"].(map[string]any)["drug"].([]any)
	row["patient"].(map[string]any)["drug"] = append(drugs, map[string]any{
		"drugcharacterization": "2",
		"medicinalproduct":     "Metformin",
	})

	assert.False(t, FaersReportMatchesSuspectDrugQuery(row, "metformin"))
}

func TestFaersReportMatchesSuspectDrugQueryEmptyQueryMatchesAll(t *testing.T) {
	row := faersRowWithSuspects(map[string]any{
		"drugcharacterization": "1",
		"medicinalproduct":     "Tofacitinib",
	})
	assert.True(t, FaersReportMatchesSuspectDrugQuery(row, ""))
}
