package sources

import (
	"context"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// QuickGOClient wraps the EBI QuickGO API, used by the Gene orchestrator's
// "go" section (spec §3 "top Gene Ontology terms").
type QuickGOClient struct {
	baseURL string
	client  *substrate.Client
}

func NewQuickGOClient(c *substrate.Client) *QuickGOClient {
	return &QuickGOClient{baseURL: substrate.BaseURL("quickgo", "https://www.ebi.ac.uk/QuickGO/services"), client: c}
}

// AnnotationsForGene fetches GO annotations for a UniProt accession.
func (q *QuickGOClient) AnnotationsForGene(ctx context.Context, uniprotID string) (map[string]any, error) {
	var out map[string]any
	err := getJSON(ctx, q.client, "quickgo", q.baseURL+"/annotation/search?geneProductId="+uniprotID, &out)
	return out, err
}
