package sources

import (
	"context"
	"encoding/json"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// MyVariantClient wraps the MyVariant.info BioThings service, the canonical
// resolution source for the Variant orchestrator (spec §4.4 "Variant").
type MyVariantClient struct{ bt *biothingsClient }

func NewMyVariantClient(c *substrate.Client) *MyVariantClient {
	return &MyVariantClient{bt: newBiothingsClient("myvariant", "https://myvariant.info/v1", c)}
}

var myVariantFields = []string{
	"clinvar", "dbnsfp", "dbsnp", "cosmic", "gnomad_exome", "gnomad_genome",
	"cadd", "civic", "vcf",
}

// Query runs a Lucene variant search, e.g. "dbsnp.rsid:rs113488022".
func (m *MyVariantClient) Query(ctx context.Context, q string, size, offset int) (int, []json.RawMessage, error) {
	return m.bt.Query(ctx, q, myVariantFields, size, offset)
}

// Get fetches one variant document by its HGVS genomic id or rsID.
func (m *MyVariantClient) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return m.bt.Get(ctx, id, myVariantFields)
}
