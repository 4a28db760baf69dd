package sources

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/substrate"
)

// AlphaGenomeClient wraps the AlphaGenome variant-effect prediction service
// (spec §3 "optional AlphaGenome regulatory prediction", §4.2 "AlphaGenome:
// variant effect prediction ... the top gene may come back as an Ensembl id
// and is resolved to a symbol via MyGene").
type AlphaGenomeClient struct {
	baseURL string
	client  *substrate.Client
	genes   *MyGeneClient
}

func NewAlphaGenomeClient(c *substrate.Client, genes *MyGeneClient) *AlphaGenomeClient {
	return &AlphaGenomeClient{
		baseURL: substrate.BaseURL("alphagenome", "https://alphagenome.deepmind.com/api/v1"),
		client:  c,
		genes:   genes,
	}
}

type alphaGenomePrediction struct {
	ExpressionEffect string  `json:"expression_effect"`
	SpliceEffect     string  `json:"splice_effect"`
	ChromatinEffect  string  `json:"chromatin_effect"`
	TopGeneEnsembl   string  `json:"top_gene_ensembl_id"`
	Score            float64 `json:"score"`
}

// Predict fetches the regulatory-effect prediction for a genomic HGVS
// variant, resolving the returned top-gene Ensembl id to a symbol via
// MyGene before returning.
func (a *AlphaGenomeClient) Predict(ctx context.Context, genomicHGVS string) (map[string]any, error) {
	token := os.Getenv("ALPHAGENOME_API_KEY")
	if token == "" {
		return nil, biomcperr.APIKeyRequired("alphagenome", "ALPHAGENOME_API_KEY", "https://alphagenome.deepmind.com")
	}

	var pred alphaGenomePrediction
	err := getJSONWithAuth(ctx, a.client, "alphagenome", a.baseURL+"/predict?variant="+genomicHGVS, token, &pred)
	if err != nil {
		return nil, err
	}

	topGeneSymbol := pred.TopGeneEnsembl
	if strings.HasPrefix(pred.TopGeneEnsembl, "ENSG") && a.genes != nil {
		if doc, err := a.genes.Get(ctx, pred.TopGeneEnsembl); err == nil {
			var resolved struct {
				Symbol string `json:"symbol"`
			}
			if json.Unmarshal(doc, &resolved) == nil && resolved.Symbol != "" {
				topGeneSymbol = resolved.Symbol
			}
		}
	}

	return map[string]any{
		"expression_effect": pred.ExpressionEffect,
		"splice_effect":      pred.SpliceEffect,
		"chromatin_effect":   pred.ChromatinEffect,
		"top_gene":           topGeneSymbol,
		"score":              pred.Score,
	}, nil
}
