package sources

import (
	"context"

	"github.com/biomcp-go/biomcp/internal/substrate"
)

// EnrichrClient wraps the Enrichr gene-set enrichment API. No orchestrator
// constructs it; the Gene "pathways" section uses Reactome only.
type EnrichrClient struct {
	baseURL string
	client  *substrate.Client
}

func NewEnrichrClient(c *substrate.Client) *EnrichrClient {
	return &EnrichrClient{baseURL: substrate.BaseURL("enrichr", "https://maayanlab.cloud/Enrichr"), client: c}
}

// EnrichGeneList runs enrichment for a gene list against a named gene-set
// library (e.g. "Reactome_2022").
func (e *EnrichrClient) EnrichGeneList(ctx context.Context, genes []string, library string) (map[string]any, error) {
	form := map[string]string{"list": joinNewline(genes), "description": "biomcp"}
	addListID, err := e.addList(ctx, form)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	err = getJSON(ctx, e.client, "enrichr", e.baseURL+"/enrich?userListId="+addListID+"&backgroundType="+library, &out)
	return out, err
}

func (e *EnrichrClient) addList(ctx context.Context, form map[string]string) (string, error) {
	var out struct {
		UserListID int `json:"userListId"`
	}
	err := postForm(ctx, e.client, "enrichr", e.baseURL+"/addList", form, &out)
	if err != nil {
		return "", err
	}
	return itoaHelper(out.UserListID), nil
}

func joinNewline(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += "\n"
		}
		out += s
	}
	return out
}
