package sources

import (
	"context"
	"net/url"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// CPICClient wraps the CPIC API, the resolution source for the supplemented
// pgx orchestrator (spec §4.6 "pgx orchestrator — resolves a gene+drug pair
// via CPIC, attaches PharmGKB dosing guideline text").
type CPICClient struct {
	baseURL string
	client  *substrate.Client
}

func NewCPICClient(c *substrate.Client) *CPICClient {
	return &CPICClient{baseURL: substrate.BaseURL("cpic", "https://api.cpicpgx.org/v1"), client: c}
}

// Recommendations fetches CPIC dosing recommendations for a gene+drug pair.
func (c *CPICClient) Recommendations(ctx context.Context, gene, drug string) ([]map[string]any, error) {
	values := url.Values{}
	values.Set("gene", "eq."+gene)
	values.Set("drug", "eq."+drug)

	var out []map[string]any
	err := getJSON(ctx, c.client, "cpic", c.baseURL+"/recommendation?"+values.Encode(), &out)
	return out, err
}
