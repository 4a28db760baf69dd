package sources

import (
	"context"
	"net/url"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// ChEMBLClient wraps the ChEMBL REST API mechanism endpoint. Its only
// caller is the Drug orchestrator's "indications" section, which reads the
// mechanism_of_action text of each row.
type ChEMBLClient struct {
	baseURL string
	client  *substrate.Client
}

func NewChEMBLClient(c *substrate.Client) *ChEMBLClient {
	return &ChEMBLClient{baseURL: substrate.BaseURL("chembl", "https://www.ebi.ac.uk/chembl/api/data"), client: c}
}

// Mechanisms fetches the mechanism-of-action rows for a ChEMBL molecule id.
func (c *ChEMBLClient) Mechanisms(ctx context.Context, chemblID string) (map[string]any, error) {
	values := url.Values{}
	values.Set("molecule_chembl_id", chemblID)
	values.Set("format", "json")

	var out map[string]any
	err := getJSON(ctx, c.client, "chembl", c.baseURL+"/mechanism?"+values.Encode(), &out)
	return out, err
}
