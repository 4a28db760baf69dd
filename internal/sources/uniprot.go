package sources

import (
	"context"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// UniProtClient wraps the UniProt REST API, used to resolve a gene symbol
// to the UniProt accession InterPro/QuickGO need (spec §4.2 point
// "resolved to a symbol via MyGene" analog, in the other direction).
type UniProtClient struct {
	baseURL string
	client  *substrate.Client
}

func NewUniProtClient(c *substrate.Client) *UniProtClient {
	return &UniProtClient{baseURL: substrate.BaseURL("uniprot", "https://rest.uniprot.org/uniprotkb"), client: c}
}

// AccessionForSymbol resolves a human gene symbol to its primary UniProt
// accession via the UniProt search endpoint.
func (u *UniProtClient) AccessionForSymbol(ctx context.Context, symbol string) (string, error) {
	var out struct {
		Results []struct {
			PrimaryAccession string `json:"primaryAccession"`
		} `json:"results"`
	}
	query := "gene:" + symbol + "+AND+organism_id:9606"
	if err := getJSON(ctx, u.client, "uniprot", u.baseURL+"/search?query="+query+"&size=1", &out); err != nil {
		return "", err
	}
	if len(out.Results) == 0 {
		return "", nil
	}
	return out.Results[0].PrimaryAccession, nil
}
