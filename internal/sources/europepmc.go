package sources

import (
	"context"
	"net/url"
	"strconv"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// EuropePMCClient wraps the Europe PMC REST API, the canonical resolution
// source for the Article orchestrator (spec §4.4 "Article" — "enrichment
// fetches the Europe PMC metadata").
type EuropePMCClient struct {
	baseURL string
	client  *substrate.Client
}

func NewEuropePMCClient(c *substrate.Client) *EuropePMCClient {
	return &EuropePMCClient{baseURL: substrate.BaseURL("europepmc", "https://www.ebi.ac.uk/europepmc/webservices/rest"), client: c}
}

// Search runs a full-text/metadata search over articles.
func (e *EuropePMCClient) Search(ctx context.Context, query string, pageSize, cursor int) (map[string]any, error) {
	values := url.Values{}
	values.Set("query", query)
	values.Set("format", "json")
	values.Set("pageSize", strconv.Itoa(pageSize))
	if cursor > 0 {
		values.Set("cursorMark", strconv.Itoa(cursor))
	}

	var out map[string]any
	err := getJSON(ctx, e.client, "europepmc", e.baseURL+"/search?"+values.Encode(), &out)
	return out, err
}

// GetByID fetches one article's metadata by PMID, PMCID, or DOI, using the
// matching source-qualified Europe PMC identifier scheme.
func (e *EuropePMCClient) GetByID(ctx context.Context, source, id string) (map[string]any, error) {
	var out map[string]any
	path := "/search?query=ext_id:" + url.QueryEscape(id) + "%20AND%20src:" + url.QueryEscape(source) + "&format=json"
	err := getJSON(ctx, e.client, "europepmc", e.baseURL+path, &out)
	return out, err
}

// FullTextXML fetches the Europe PMC full-text XML for an open-access
// article. The article "full-text" section does not call it; that section
// uses PMC OA only.
func (e *EuropePMCClient) FullTextXML(ctx context.Context, pmcid string) ([]byte, error) {
	return rawGet(ctx, e.client, "europepmc", e.baseURL+"/"+url.PathEscape(pmcid)+"/fullTextXML")
}
