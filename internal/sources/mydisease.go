package sources

import (
	"context"
	"encoding/json"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// MyDiseaseClient wraps the MyDisease.info BioThings service, the canonical
// resolution source for the Disease orchestrator (spec §4.4 "Disease").
type MyDiseaseClient struct{ bt *biothingsClient }

func NewMyDiseaseClient(c *substrate.Client) *MyDiseaseClient {
	return &MyDiseaseClient{bt: newBiothingsClient("mydisease", "https://mydisease.info/v1", c)}
}

var myDiseaseFields = []string{
	"mondo", "disease_ontology", "hpo", "orphanet", "ctd", "umls",
}

// Query runs a Lucene disease search, e.g. against a free-text disease name
// (spec §4.4 "Disease resolver prefers broad form" — candidate scoring lives
// in internal/orchestrators, this only returns raw candidates).
func (m *MyDiseaseClient) Query(ctx context.Context, q string, size, offset int) (int, []json.RawMessage, error) {
	return m.bt.Query(ctx, q, myDiseaseFields, size, offset)
}

// Get fetches one disease document by its MONDO or DOID identifier.
func (m *MyDiseaseClient) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return m.bt.Get(ctx, id, myDiseaseFields)
}
