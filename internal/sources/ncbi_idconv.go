package sources

import (
	"context"
	"net/url"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// NCBIIDConvClient wraps the NCBI/PMC ID Converter API, which translates
// between PMID, PMCID, and DOI. The Article orchestrator holds one but does
// not call it; it sends the id to Europe PMC with a source code chosen by
// classifyArticleID.
type NCBIIDConvClient struct {
	baseURL string
	client  *substrate.Client
}

func NewNCBIIDConvClient(c *substrate.Client) *NCBIIDConvClient {
	return &NCBIIDConvClient{baseURL: substrate.BaseURL("ncbi_idconv", "https://www.ncbi.nlm.nih.gov/pmc/utils/idconv/v1.0"), client: c}
}

// IDConvResponse is one record of the converter's response.
type IDConvResponse struct {
	Records []struct {
		PMID  string `json:"pmid"`
		PMCID string `json:"pmcid"`
		DOI   string `json:"doi"`
	} `json:"records"`
}

// Convert resolves id (PMID, PMCID, or DOI) to the other identifier forms.
func (n *NCBIIDConvClient) Convert(ctx context.Context, id string) (*IDConvResponse, error) {
	values := url.Values{}
	values.Set("ids", id)
	values.Set("format", "json")

	var out IDConvResponse
	err := getJSON(ctx, n.client, "ncbi_idconv", n.baseURL+"/?"+values.Encode(), &out)
	return &out, err
}
