package sources

import (
	"context"
	"net/url"
	"strconv"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// StringDBClient wraps the STRING protein-protein interaction API, used by
// the Gene orchestrator's "interactions" section (spec §3 "top protein-
// protein interactions").
type StringDBClient struct {
	baseURL string
	client  *substrate.Client
}

func NewStringDBClient(c *substrate.Client) *StringDBClient {
	return &StringDBClient{baseURL: substrate.BaseURL("string_db", "https://string-db.org/api"), client: c}
}

// Interactions fetches the top interaction partners for a gene symbol
// (human, taxon 9606).
func (s *StringDBClient) Interactions(ctx context.Context, symbol string, limit int) ([]map[string]any, error) {
	values := url.Values{}
	values.Set("identifiers", symbol)
	values.Set("species", "9606")
	values.Set("limit", strconv.Itoa(limit))

	var out []map[string]any
	err := getJSON(ctx, s.client, "string_db", s.baseURL+"/json/network?"+values.Encode(), &out)
	return out, err
}
