package sources

import (
	"context"
	"net/url"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// PubTator3Client wraps the PubTator3 annotation API, used by the Article
// orchestrator's optional PubTator annotation fetch (spec §3 "optional
// PubTator3 annotation counts (genes, diseases, chemicals, mutations)").
type PubTator3Client struct {
	baseURL string
	client  *substrate.Client
}

func NewPubTator3Client(c *substrate.Client) *PubTator3Client {
	return &PubTator3Client{baseURL: substrate.BaseURL("pubtator3", "https://www.ncbi.nlm.nih.gov/research/pubtator3-api"), client: c}
}

// Annotations fetches entity annotations for a PMID.
func (p *PubTator3Client) Annotations(ctx context.Context, pmid string) (map[string]any, error) {
	var out map[string]any
	err := getJSON(ctx, p.client, "pubtator3", p.baseURL+"/publications/export/biocjson?pmids="+url.QueryEscape(pmid), &out)
	return out, err
}
