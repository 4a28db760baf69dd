package sources

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/substrate"
)

// MyGeneClient is a thin field-projection wrapper over the shared BioThings
// query/get verbs for the MyGene.info gene service (spec §4.2).
type MyGeneClient struct{ bt *biothingsClient }

// NewMyGeneClient constructs a MyGeneClient against the shared substrate
// client.
func NewMyGeneClient(c *substrate.Client) *MyGeneClient {
	return &MyGeneClient{bt: newBiothingsClient("mygene", "https://mygene.info/v3", c)}
}

var myGeneFields = []string{
	"symbol", "entrezgene", "ensembl.gene", "HGNC", "alias", "name", "summary",
	"genomic_pos", "pathway", "go", "interpro", "pharmgkb",
}

// GeneHit is one MyGene search result row.
type GeneHit struct {
	ID      string          `json:"_id"`
	Symbol  string          `json:"symbol"`
	Score   float64         `json:"_score"`
	Raw     json.RawMessage `json:"-"`
}

// Query runs a Lucene gene search (spec §4.4 "Gene" resolution).
func (m *MyGeneClient) Query(ctx context.Context, q string, size, offset int) (int, []json.RawMessage, error) {
	return m.bt.Query(ctx, q, nil, size, offset)
}

// Get fetches the fixed field projection for one gene by entrez/ensembl id.
func (m *MyGeneClient) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return m.bt.Get(ctx, id, myGeneFields)
}

// GetBySymbol is a convenience resolving a gene symbol through Query, since
// MyGene's /get endpoint only accepts entrez/ensembl ids. It searches the
// symbol and alias fields with the fixed field projection and returns the
// hit whose symbol matches exactly, else the first hit listing it as an
// alias, else the top-scored hit.
func (m *MyGeneClient) GetBySymbol(ctx context.Context, symbol string) (json.RawMessage, error) {
	q := substrate.EscapeLucene(symbol)
	total, hits, err := m.bt.Query(ctx, "symbol:"+q+" OR alias:"+q, myGeneFields, 10, 0)
	if err != nil {
		return nil, err
	}
	if total == 0 || len(hits) == 0 {
		return nil, biomcperr.NotFound("gene", symbol, "check the gene symbol")
	}
	var aliasHit json.RawMessage
	for _, hit := range hits {
		var doc struct{ Symbol string; Alias json.RawMessage }
		if json.Unmarshal(hit, &doc) == nil && strings.EqualFold(doc.Symbol, symbol) {
			return hit, nil
		}
		if aliasHit == nil && strings.Contains(strings.ToUpper(string(doc.Alias)), `"`+strings.ToUpper(symbol)+`"`) {
			aliasHit = hit
		}
	}
	if aliasHit != nil {
		return aliasHit, nil
	}
	return hits[0], nil
}
