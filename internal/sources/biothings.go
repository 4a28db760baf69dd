// Package sources holds one thin adapter per upstream biomedical API (spec
// §4.2). Every client is built on internal/substrate: construct once, typed
// operations, local input validation, no client-side retry (the substrate
// already retries), no package-level mutable state beyond the shared
// substrate.Client singleton.
package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/substrate"
)

// biothingsClient is the shared query/get implementation behind MyGene,
// MyVariant, MyChem, and MyDisease (spec §4.2 "BioThings family").
type biothingsClient struct {
	api     string
	baseURL string
	client  *substrate.Client
}

func newBiothingsClient(api, fallbackBase string, c *substrate.Client) *biothingsClient {
	return &biothingsClient{api: api, baseURL: substrate.BaseURL(api, fallbackBase), client: c}
}

// biothingsQueryResponse mirrors the BioThings query envelope.
type biothingsQueryResponse struct {
	Total int               `json:"total"`
	Hits  []json.RawMessage `json:"hits"`
}

// Query runs a Lucene query string against the BioThings /query endpoint,
// validating the pagination window first (spec §4.2 "Result windows are
// validated against the BioThings cap").
func (b *biothingsClient) Query(ctx context.Context, q string, fields []string, size, offset int) (int, []json.RawMessage, error) {
	if err := substrate.ValidateBioThingsWindow(offset, size); err != nil {
		return 0, nil, err
	}

	values := url.Values{}
	values.Set("q", q)
	if len(fields) > 0 {
		values.Set("fields", strings.Join(fields, ","))
	}
	values.Set("size", strconv.Itoa(size))
	values.Set("from", strconv.Itoa(offset))

	body, err := b.get(ctx, "/query?"+values.Encode())
	if err != nil {
		return 0, nil, err
	}

	var resp biothingsQueryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, nil, biomcperr.APIJSON(b.api, err)
	}
	return resp.Total, resp.Hits, nil
}

// Get fetches a single document by id from the BioThings /<id> endpoint,
// mapping a 404 to biomcperr.NotFound per spec §4.2 "per-operation 404
// policy".
func (b *biothingsClient) Get(ctx context.Context, id string, fields []string) (json.RawMessage, error) {
	values := url.Values{}
	if len(fields) > 0 {
		values.Set("fields", strings.Join(fields, ","))
	}
	path := "/" + url.PathEscape(id)
	if enc := values.Encode(); enc != "" {
		path += "?" + enc
	}

	body, err := b.get(ctx, path)
	if err != nil {
		if biomcperr.IsHTTPStatus(err, http.StatusNotFound) {
			return nil, biomcperr.NotFound(b.api, id, "check the identifier and try again")
		}
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (b *biothingsClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return nil, biomcperr.HTTP(err)
	}
	req.Header.Set("Accept", "application/json")
	body, _, err := b.client.Do(req, b.api)
	return body, err
}

