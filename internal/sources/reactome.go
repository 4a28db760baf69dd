package sources

import (
	"context"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// ReactomeClient wraps the Reactome Content Service, used by the Gene
// orchestrator's "pathways" section (spec §3 "top pathways").
type ReactomeClient struct {
	baseURL string
	client  *substrate.Client
}

func NewReactomeClient(c *substrate.Client) *ReactomeClient {
	return &ReactomeClient{baseURL: substrate.BaseURL("reactome", "https://reactome.org/ContentService"), client: c}
}

// PathwaysForGene fetches the pathway list a gene symbol participates in.
func (r *ReactomeClient) PathwaysForGene(ctx context.Context, symbol string) ([]map[string]any, error) {
	var out []map[string]any
	err := getJSON(ctx, r.client, "reactome", r.baseURL+"/data/pathways/low/entity/"+symbol+"/allForms?species=9606", &out)
	return out, err
}
