package sources

import (
	"context"
	"net/url"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// MonarchClient wraps the Monarch Initiative API, used by the Disease
// orchestrator's "variants" section.
type MonarchClient struct {
	baseURL string
	client  *substrate.Client
}

func NewMonarchClient(c *substrate.Client) *MonarchClient {
	return &MonarchClient{baseURL: substrate.BaseURL("monarch", "https://api.monarchinitiative.org/v3/api"), client: c}
}

// AssociatedGenes fetches the gene-disease association list for a MONDO id.
func (m *MonarchClient) AssociatedGenes(ctx context.Context, mondoID string) (map[string]any, error) {
	values := url.Values{}
	values.Set("entity", mondoID)
	values.Set("category", "biolink:GeneToDiseaseAssociation")

	var out map[string]any
	err := getJSON(ctx, m.client, "monarch", m.baseURL+"/association?"+values.Encode(), &out)
	return out, err
}
