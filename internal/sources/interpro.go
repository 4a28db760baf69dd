package sources

import (
	"context"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// InterProClient wraps the InterPro protein-domain API, used by the Gene
// orchestrator's "domains" section (spec §3 "top protein domains").
type InterProClient struct {
	baseURL string
	client  *substrate.Client
}

func NewInterProClient(c *substrate.Client) *InterProClient {
	return &InterProClient{baseURL: substrate.BaseURL("interpro", "https://www.ebi.ac.uk/interpro/api"), client: c}
}

// DomainsForUniProt fetches the InterPro domain entries for a UniProt
// accession.
func (i *InterProClient) DomainsForUniProt(ctx context.Context, uniprotID string) (map[string]any, error) {
	var out map[string]any
	err := getJSON(ctx, i.client, "interpro", i.baseURL+"/entry/interpro/protein/uniprot/"+uniprotID, &out)
	return out, err
}
