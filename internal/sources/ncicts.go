package sources

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/substrate"
)

// NCICTSClient wraps the NCI Clinical Trials Search API, the second trial
// source the Trial orchestrator's source enum selects between (spec §4.4
// "Trial").
type NCICTSClient struct {
	baseURL string
	client  *substrate.Client
}

func NewNCICTSClient(c *substrate.Client) *NCICTSClient {
	return &NCICTSClient{baseURL: substrate.BaseURL("ncicts", "https://clinicaltrialsapi.cancer.gov/api/v2"), client: c}
}

// SearchTrials runs a free-text trial search. NCI CTS requires an API key
// (spec §4.2 "NCI requires an API key (X-API-KEY header) and returns
// ApiKeyRequired if the environment lacks it").
func (n *NCICTSClient) SearchTrials(ctx context.Context, query string, size, offset int) (map[string]any, error) {
	key, err := n.apiKey()
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("trial_title", query)
	values.Set("size", strconv.Itoa(size))
	values.Set("from", strconv.Itoa(offset))

	var out map[string]any
	err = n.get(ctx, "/trials?"+values.Encode(), key, &out)
	return out, err
}

// GetTrial fetches one trial by NCI id.
func (n *NCICTSClient) GetTrial(ctx context.Context, nciID string) (map[string]any, error) {
	key, err := n.apiKey()
	if err != nil {
		return nil, err
	}
	var out map[string]any
	err = n.get(ctx, "/trials/"+url.PathEscape(nciID), key, &out)
	return out, err
}

func (n *NCICTSClient) apiKey() (string, error) {
	if key := os.Getenv("NCI_CTS_API_KEY"); key != "" {
		return key, nil
	}
	return "", biomcperr.APIKeyRequired("ncicts", "NCI_CTS_API_KEY", "https://clinicaltrialsapi.cancer.gov/")
}

func (n *NCICTSClient) get(ctx context.Context, path, apiKey string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+path, nil)
	if err != nil {
		return biomcperr.HTTP(err)
	}
	req.Header.Set("X-API-KEY", apiKey)
	body, _, err := n.client.Do(req, "ncicts")
	if err != nil {
		return err
	}
	return decodeJSON("ncicts", body, out)
}
