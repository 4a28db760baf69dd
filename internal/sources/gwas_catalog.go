package sources

import (
	"context"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// GWASCatalogClient wraps the NHGRI-EBI GWAS Catalog REST API, used by the
// Variant orchestrator's "gwas" section (spec §3 "GWAS associations").
type GWASCatalogClient struct {
	baseURL string
	client  *substrate.Client
}

func NewGWASCatalogClient(c *substrate.Client) *GWASCatalogClient {
	return &GWASCatalogClient{baseURL: substrate.BaseURL("gwas_catalog", "https://www.ebi.ac.uk/gwas/rest/api"), client: c}
}

// AssociationsForRSID fetches GWAS associations for an rsID.
func (g *GWASCatalogClient) AssociationsForRSID(ctx context.Context, rsid string) (map[string]any, error) {
	var out map[string]any
	err := getJSON(ctx, g.client, "gwas_catalog", g.baseURL+"/singleNucleotidePolymorphisms/"+rsid+"/associations", &out)
	return out, err
}
