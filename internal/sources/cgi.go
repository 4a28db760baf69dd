package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/substrate"
)

// CGIClient queries the Cancer Genome Interpreter for variant-drug
// association calls (spec §3 "CGI drug associations"). Repurposed from the
// teacher's LOVD client, which this domain has no use for: both are thin
// GET-JSON-by-variant adapters over a public variant-curation database, and
// CGI is the one this spec actually names.
type CGIClient struct {
	baseURL string
	client  *substrate.Client
}

func NewCGIClient(c *substrate.Client) *CGIClient {
	return &CGIClient{baseURL: substrate.BaseURL("cgi", "https://www.cancergenomeinterpreter.org/api/v1"), client: c}
}

// CGIAssociation is one gene+variant drug-response call.
type CGIAssociation struct {
	Gene        string `json:"gene"`
	Variant     string `json:"variant"`
	Drug        string `json:"drug"`
	Association string `json:"association"`
	Evidence    string `json:"evidence_level"`
}

// DrugAssociations fetches CGI's drug-response calls for a gene + HGVS
// protein-change pair.
func (c *CGIClient) DrugAssociations(ctx context.Context, gene, hgvsp string) ([]CGIAssociation, error) {
	if !substrate.IsValidGeneSymbol(gene) {
		return nil, biomcperr.InvalidArgument("invalid gene symbol %q", gene)
	}

	values := url.Values{}
	values.Set("gene", gene)
	values.Set("variant", hgvsp)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/biomarkers?"+values.Encode(), nil)
	if err != nil {
		return nil, biomcperr.HTTP(err)
	}
	body, _, err := c.client.Do(req, "cgi")
	if err != nil {
		return nil, err
	}

	var out []CGIAssociation
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, biomcperr.APIJSON("cgi", err)
	}
	return out, nil
}
