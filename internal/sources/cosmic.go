package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/substrate"
)

// COSMICClient queries the COSMIC catalog for the tumor-context and
// mutation-frequency detail the Variant entity's COSMIC id and tumor
// context carry (spec §3 "COSMIC id ... COSMIC tumor context"). Adapted
// from the teacher's bespoke-timer COSMIC client onto the shared substrate.
type COSMICClient struct {
	baseURL string
	client  *substrate.Client
}

func NewCOSMICClient(c *substrate.Client) *COSMICClient {
	return &COSMICClient{baseURL: substrate.BaseURL("cosmic", "https://cancer.sanger.ac.uk/cosmic/search/api"), client: c}
}

// COSMICMutation is one row of the COSMIC mutation search response.
type COSMICMutation struct {
	CosmicID        string `json:"cosmic_id"`
	GeneName        string `json:"gene_name"`
	AAMutation      string `json:"aa_mutation"`
	PrimaryTissue   string `json:"primary_tissue"`
	PrimaryHistology string `json:"primary_histology"`
	SampleCount     int    `json:"sample_count"`
}

type cosmicResponse struct {
	Data []COSMICMutation `json:"data"`
}

// SearchByGeneAndMutation looks up COSMIC mutation records for a gene +
// protein-change pair (e.g. BRAF, "p.V600E").
func (c *COSMICClient) SearchByGeneAndMutation(ctx context.Context, gene, aaMutation string) ([]COSMICMutation, error) {
	if !substrate.IsValidGeneSymbol(gene) {
		return nil, biomcperr.InvalidArgument("invalid gene symbol %q", gene)
	}

	values := url.Values{}
	values.Set("gene", gene)
	values.Set("mutation", aaMutation)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/mutations?"+values.Encode(), nil)
	if err != nil {
		return nil, biomcperr.HTTP(err)
	}
	body, _, err := c.client.Do(req, "cosmic")
	if err != nil {
		return nil, err
	}

	var resp cosmicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, biomcperr.APIJSON("cosmic", err)
	}
	return resp.Data, nil
}
