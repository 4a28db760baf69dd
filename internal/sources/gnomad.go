package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/substrate"
)

// GnomADClient queries the gnomAD GraphQL API for population allele
// frequencies (spec §3 "gnomAD allele frequency and sub-population
// breakdown", §4.4 "Variant" section population). Adapted from the
// teacher's REST gnomAD client, rebuilt on the shared substrate and GraphQL
// instead of a bespoke timer-based rate limiter.
type GnomADClient struct {
	baseURL string
	client  *substrate.Client
}

func NewGnomADClient(c *substrate.Client) *GnomADClient {
	return &GnomADClient{baseURL: substrate.BaseURL("gnomad", "https://gnomad.broadinstitute.org/api"), client: c}
}

const gnomadVariantQuery = `
query VariantFreq($variantId: String!, $datasetId: DatasetId!) {
  variant(variantId: $variantId, dataset: $datasetId) {
    variant_id
    genome { ac an af populations { id ac an af } }
    exome  { ac an af populations { id ac an af } }
  }
}`

type gnomadRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type gnomadResponse struct {
	Data struct {
		Variant json.RawMessage `json:"variant"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// VariantFrequency fetches the gnomAD allele-frequency record for a
// chr-pos-ref-alt variant id (e.g. "7-140753336-A-T") on the given dataset
// (e.g. "gnomad_r4").
func (g *GnomADClient) VariantFrequency(ctx context.Context, variantID, dataset string) (json.RawMessage, error) {
	payload, err := json.Marshal(gnomadRequest{
		Query: gnomadVariantQuery,
		Variables: map[string]any{
			"variantId": variantID,
			"datasetId": dataset,
		},
	})
	if err != nil {
		return nil, biomcperr.JSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, biomcperr.HTTP(err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, _, err := g.client.Do(req, "gnomad")
	if err != nil {
		return nil, err
	}

	var resp gnomadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, biomcperr.APIJSON("gnomad", err)
	}
	if len(resp.Errors) > 0 {
		return nil, biomcperr.API("gnomad", resp.Errors[0].Message)
	}
	if len(resp.Data.Variant) == 0 {
		return nil, biomcperr.NotFound("variant", variantID, "check the chr-pos-ref-alt format")
	}
	return resp.Data.Variant, nil
}
