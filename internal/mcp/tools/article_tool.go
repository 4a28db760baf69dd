package tools

import (
	"context"
	"fmt"

	"github.com/biomcp-go/biomcp/internal/mcp/protocol"
	"github.com/biomcp-go/biomcp/internal/orchestrators"
)

// ArticleGetTool resolves a PMID, PMCID, or DOI to its enriched record.
type ArticleGetTool struct {
	orch *orchestrators.ArticleOrchestrator
}

func NewArticleGetTool(orch *orchestrators.ArticleOrchestrator) *ArticleGetTool {
	return &ArticleGetTool{orch: orch}
}

type articleGetParams struct {
	ID       string   `json:"id"`
	Sections []string `json:"sections"`
}

func (t *ArticleGetTool) ValidateParams(params interface{}) error {
	var p articleGetParams
	return decodeParams(params, &p)
}

func (t *ArticleGetTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "get_article",
		Description: "Resolve a PMID, PMCID, or DOI to an enriched article record (full-text availability, PubTator annotations).",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id":       stringSchema("PMID, PMCID, or DOI, e.g. \"PMC7096066\""),
				"sections": sectionsSchema("article"),
			},
			"required": []string{"id"},
		},
	}
}

func (t *ArticleGetTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p articleGetParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	result, err := t.orch.Get(ctx, p.ID, p.Sections)
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(result)
}

// ArticleSearchTool searches Europe PMC for articles matching gene/disease
// filters and an optional publication-date floor.
type ArticleSearchTool struct {
	orch *orchestrators.ArticleOrchestrator
}

func NewArticleSearchTool(orch *orchestrators.ArticleOrchestrator) *ArticleSearchTool {
	return &ArticleSearchTool{orch: orch}
}

type articleSearchParams struct {
	Gene    string `json:"gene"`
	Disease string `json:"disease"`
	Since   string `json:"since"`
	Limit   int    `json:"limit"`
}

func (t *ArticleSearchTool) ValidateParams(params interface{}) error {
	var p articleSearchParams
	return decodeParams(params, &p)
}

func (t *ArticleSearchTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "search_article",
		Description: "Search Europe PMC for articles filtered by gene, disease, and/or a publication-date floor. At least one of gene, disease, or since is required.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"gene":    stringSchema("Gene symbol filter, e.g. \"BRAF\""),
				"disease": stringSchema("Disease name filter, e.g. \"melanoma\""),
				"since":   stringSchema("Publication date floor, RFC 3339 date (YYYY-MM-DD)"),
				"limit":   intSchema("Maximum results to return, 1-50"),
			},
			"required": []string{"limit"},
		},
	}
}

func (t *ArticleSearchTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p articleSearchParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	page, err := t.orch.Search(ctx, orchestrators.ArticleSearchParams{
		Gene:    p.Gene,
		Disease: p.Disease,
		Since:   p.Since,
		Limit:   p.Limit,
	})
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(page)
}
