package sources

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// CBioPortalClient wraps the cBioPortal REST API, used by the Variant
// orchestrator's "cbioportal" section (spec §4.4 "Variant" — "cbioportal
// uses the process-wide default study ids, overridable by environment
// variables").
type CBioPortalClient struct {
	baseURL string
	client  *substrate.Client
}

func NewCBioPortalClient(c *substrate.Client) *CBioPortalClient {
	return &CBioPortalClient{baseURL: substrate.BaseURL("cbioportal", "https://www.cbioportal.org/api"), client: c}
}

// defaultStudyIDs is the process-wide default cBioPortal study id set;
// overridable via BIOMCP_CBIOPORTAL_STUDIES (comma-separated).
func defaultStudyIDs() []string {
	if v := os.Getenv("BIOMCP_CBIOPORTAL_STUDIES"); v != "" {
		return strings.Split(v, ",")
	}
	return []string{"msk_impact_2017", "tcga_pan_can_atlas_2018"}
}

// MutationFrequencies fetches per-study mutation frequencies for a gene and
// protein change across the default (or overridden) study set.
func (c *CBioPortalClient) MutationFrequencies(ctx context.Context, gene, hgvsp string) (map[string]any, error) {
	studies := defaultStudyIDs()
	values := url.Values{}
	values.Set("geneSymbol", gene)
	values.Set("proteinChange", hgvsp)
	values.Set("studyIds", strings.Join(studies, ","))

	var out map[string]any
	err := getJSON(ctx, c.client, "cbioportal", c.baseURL+"/mutations/fetch?"+values.Encode(), &out)
	return out, err
}
