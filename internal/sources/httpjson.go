package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/substrate"
)

// decodeJSON unmarshals body into out, wrapping failures as biomcperr.APIJSON.
func decodeJSON(api string, body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return biomcperr.APIJSON(api, err)
	}
	return nil
}

// itoaHelper wraps strconv.Itoa for call sites that import this file's
// helpers but not strconv directly.
func itoaHelper(n int) string { return strconv.Itoa(n) }

// postForm POSTs an application/x-www-form-urlencoded body, for the few
// upstreams (Enrichr) that don't accept JSON.
func postForm(ctx context.Context, c *substrate.Client, api, target string, form map[string]string, out any) error {
	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader([]byte(values.Encode())))
	if err != nil {
		return biomcperr.HTTP(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	body, _, err := c.Do(req, api)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return biomcperr.APIJSON(api, err)
	}
	return nil
}

func jsonReader(b []byte) io.Reader { return bytes.NewReader(b) }

// getJSON is a small shared helper for the many source clients that are
// nothing more than "GET this URL, decode this JSON shape" (spec §9
// "Polymorphic source clients: ... do not introduce an artificial common
// trait" — this is a private helper function, not a shared interface the
// clients implement).
func getJSON(ctx context.Context, c *substrate.Client, api, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return biomcperr.HTTP(err)
	}
	req.Header.Set("Accept", "application/json")
	body, _, err := c.Do(req, api)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return biomcperr.APIJSON(api, err)
	}
	return nil
}

// getJSONWithAuth is getJSON plus a Bearer Authorization header, for the
// handful of upstreams that require an API token (AlphaGenome, NCI CTS).
func getJSONWithAuth(ctx context.Context, c *substrate.Client, api, url, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return biomcperr.HTTP(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	body, _, err := c.Do(req, api)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return biomcperr.APIJSON(api, err)
	}
	return nil
}

// rawGet fetches url and returns the raw response body, for XML/text
// upstreams that don't fit the JSON decode path.
func rawGet(ctx context.Context, c *substrate.Client, api, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, biomcperr.HTTP(err)
	}
	body, _, err := c.Do(req, api)
	return body, err
}

// postJSON POSTs a JSON-encoded payload and decodes a JSON response, for
// the GraphQL/batch-style upstreams (OpenTargets, gnomAD).
func postJSON(ctx context.Context, c *substrate.Client, api, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return biomcperr.JSON(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, jsonReader(body))
	if err != nil {
		return biomcperr.HTTP(err)
	}
	req.Header.Set("Content-Type", "application/json")
	respBody, _, err := c.Do(req, api)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return biomcperr.APIJSON(api, err)
	}
	return nil
}
