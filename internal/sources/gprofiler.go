package sources

import (
	"context"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// GProfilerClient wraps g:Profiler's g:GOSt functional-enrichment API. No
// orchestrator constructs it; the Gene "go" section uses QuickGO only.
type GProfilerClient struct {
	baseURL string
	client  *substrate.Client
}

func NewGProfilerClient(c *substrate.Client) *GProfilerClient {
	return &GProfilerClient{baseURL: substrate.BaseURL("gprofiler", "https://biit.cs.ut.ee/gprofiler/api/gost/profile"), client: c}
}

type gprofilerRequest struct {
	Organism string   `json:"organism"`
	Query    []string `json:"query"`
	Sources  []string `json:"sources"`
}

// Enrich runs a GO-term functional enrichment query for a gene list.
func (g *GProfilerClient) Enrich(ctx context.Context, genes []string) (map[string]any, error) {
	var out map[string]any
	err := postJSON(ctx, g.client, "gprofiler", g.baseURL, gprofilerRequest{
		Organism: "hsapiens", Query: genes, Sources: []string{"GO:BP", "GO:MF", "GO:CC"},
	}, &out)
	return out, err
}
