package sources

import (
	"context"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// HPOClient wraps the Human Phenotype Ontology API. No orchestrator
// constructs it; the Disease orchestrator does not fill its "phenotypes"
// section.
type HPOClient struct {
	baseURL string
	client  *substrate.Client
}

func NewHPOClient(c *substrate.Client) *HPOClient {
	return &HPOClient{baseURL: substrate.BaseURL("hpo", "https://ontology.jax.org/api/hp"), client: c}
}

// DiseasePhenotypes fetches the phenotype associations for a MONDO/OMIM
// disease id.
func (h *HPOClient) DiseasePhenotypes(ctx context.Context, diseaseID string) (map[string]any, error) {
	var out map[string]any
	err := getJSON(ctx, h.client, "hpo", h.baseURL+"/diseases/"+diseaseID, &out)
	return out, err
}

// Term fetches one HPO term by id (e.g. "HP:0001250").
func (h *HPOClient) Term(ctx context.Context, hpoID string) (map[string]any, error) {
	var out map[string]any
	err := getJSON(ctx, h.client, "hpo", h.baseURL+"/terms/"+hpoID, &out)
	return out, err
}
