package sources

import (
	"context"
	"encoding/json"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// MyChemClient wraps the MyChem.info BioThings service, the canonical
// resolution source for the Drug orchestrator (spec §4.4 "Drug").
type MyChemClient struct{ bt *biothingsClient }

func NewMyChemClient(c *substrate.Client) *MyChemClient {
	return &MyChemClient{bt: newBiothingsClient("mychem", "https://mychem.info/v1", c)}
}

var myChemFields = []string{
	"drugbank", "chembl", "unii", "pharmgkb", "drugcentral.approval",
	"drugcentral.pharmacology_class",
}

// Query runs a Lucene chemical/drug search.
func (m *MyChemClient) Query(ctx context.Context, q string, size, offset int) (int, []json.RawMessage, error) {
	return m.bt.Query(ctx, q, myChemFields, size, offset)
}

// Get fetches one drug document by its DrugBank, ChEMBL, or UNII id.
func (m *MyChemClient) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return m.bt.Get(ctx, id, myChemFields)
}
