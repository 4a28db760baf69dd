package sources

import (
	"context"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// CivicClient wraps the CIViC GraphQL API, used by Gene, Variant, Disease,
// and Drug orchestrators for the shared "civic" section (spec §3 "optional
// CIViC context" recurring across entities).
type CivicClient struct {
	baseURL string
	client  *substrate.Client
}

func NewCivicClient(c *substrate.Client) *CivicClient {
	return &CivicClient{baseURL: substrate.BaseURL("civic", "https://civicdb.org/api/graphql"), client: c}
}

const civicEvidenceQuery = `query EvidenceForVariant($variantName: String!) {
  evidenceItems(variantName: $variantName) {
    nodes { id description evidenceLevel significance disease { name } drugs { name } }
  }
}`

// EvidenceForVariant fetches CIViC evidence items for a gene+variant
// molecular profile string.
func (c *CivicClient) EvidenceForVariant(ctx context.Context, variantName string) (map[string]any, error) {
	var resp gqlResponse
	err := postJSON(ctx, c.client, "civic", c.baseURL,
		gqlRequest{Query: civicEvidenceQuery, Variables: map[string]any{"variantName": variantName}}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

const civicGeneQuery = `query EvidenceForGene($entrezSymbol: String!) {
  genes(name: $entrezSymbol) { nodes { variants { nodes { name } } } }
}`

// EvidenceForGene fetches the molecular-profile list for a gene, used by
// the Gene orchestrator's "civic" section.
func (c *CivicClient) EvidenceForGene(ctx context.Context, symbol string) (map[string]any, error) {
	var resp gqlResponse
	err := postJSON(ctx, c.client, "civic", c.baseURL,
		gqlRequest{Query: civicGeneQuery, Variables: map[string]any{"entrezSymbol": symbol}}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
