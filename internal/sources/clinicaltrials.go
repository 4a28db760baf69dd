package sources

import (
	"context"
	"net/url"
	"strconv"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// ClinicalTrialsClient wraps ClinicalTrials.gov's v2 REST API, one of the
// two upstreams the Trial orchestrator selects between via its source enum
// (spec §4.4 "Trial").
type ClinicalTrialsClient struct {
	baseURL string
	client  *substrate.Client
}

func NewClinicalTrialsClient(c *substrate.Client) *ClinicalTrialsClient {
	return &ClinicalTrialsClient{baseURL: substrate.BaseURL("clinicaltrials", "https://clinicaltrials.gov/api/v2"), client: c}
}

// SearchStudies runs a condition/intervention full-text search.
func (c *ClinicalTrialsClient) SearchStudies(ctx context.Context, query string, pageSize int) (map[string]any, error) {
	values := url.Values{}
	values.Set("query.term", query)
	values.Set("pageSize", strconv.Itoa(pageSize))

	var out map[string]any
	err := getJSON(ctx, c.client, "clinicaltrials", c.baseURL+"/studies?"+values.Encode(), &out)
	return out, err
}

// GetStudy fetches one study by NCT id.
func (c *ClinicalTrialsClient) GetStudy(ctx context.Context, nctID string) (map[string]any, error) {
	var out map[string]any
	err := getJSON(ctx, c.client, "clinicaltrials", c.baseURL+"/studies/"+url.PathEscape(nctID), &out)
	return out, err
}
