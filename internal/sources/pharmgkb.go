package sources

import (
	"context"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// PharmGKBClient wraps the PharmGKB REST API, used by the Gene
// orchestrator's "pharmacogenomics" section and the pgx orchestrator's
// dosing guideline attachment (spec §3 "optional PharmGKB annotations",
// §4.6 supplemented pgx orchestrator).
type PharmGKBClient struct {
	baseURL string
	client  *substrate.Client
}

func NewPharmGKBClient(c *substrate.Client) *PharmGKBClient {
	return &PharmGKBClient{baseURL: substrate.BaseURL("pharmgkb", "https://api.pharmgkb.org/v1/data"), client: c}
}

// ClinicalAnnotationsForGene fetches PharmGKB clinical annotations for a
// gene symbol.
func (p *PharmGKBClient) ClinicalAnnotationsForGene(ctx context.Context, symbol string) (map[string]any, error) {
	var out map[string]any
	err := getJSON(ctx, p.client, "pharmgkb", p.baseURL+"/clinicalAnnotation?location.genes.symbol="+symbol, &out)
	return out, err
}

// DosingGuideline fetches the dosing guideline document for a gene+drug
// pair.
func (p *PharmGKBClient) DosingGuideline(ctx context.Context, gene, drug string) (map[string]any, error) {
	var out map[string]any
	err := getJSON(ctx, p.client, "pharmgkb", p.baseURL+"/guideline?relatedGenes.symbol="+gene+"&relatedChemicals.name="+drug, &out)
	return out, err
}
