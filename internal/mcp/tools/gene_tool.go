package tools

import (
	"context"
	"fmt"

	"github.com/biomcp-go/biomcp/internal/mcp/protocol"
	"github.com/biomcp-go/biomcp/internal/orchestrators"
)

// GeneGetTool resolves a gene symbol or alias to its enriched record.
type GeneGetTool struct {
	orch *orchestrators.GeneOrchestrator
}

func NewGeneGetTool(orch *orchestrators.GeneOrchestrator) *GeneGetTool {
	return &GeneGetTool{orch: orch}
}

type geneGetParams struct {
	Symbol   string   `json:"symbol"`
	Sections []string `json:"sections"`
}

func (t *GeneGetTool) ValidateParams(params interface{}) error {
	var p geneGetParams
	return decodeParams(params, &p)
}

func (t *GeneGetTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "get_gene",
		Description: "Resolve a gene symbol or alias to an enriched gene record (function, interactions, pathways, GO terms, domains, pharmacogenomics, CIViC evidence).",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"symbol":   stringSchema("Gene symbol or alias, e.g. \"BRAF\""),
				"sections": sectionsSchema("gene"),
			},
			"required": []string{"symbol"},
		},
	}
}

func (t *GeneGetTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p geneGetParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	result, err := t.orch.Get(ctx, p.Symbol, p.Sections)
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(result)
}

// GeneSearchTool searches MyGene.info for genes matching a free-text query.
type GeneSearchTool struct {
	orch *orchestrators.GeneOrchestrator
}

func NewGeneSearchTool(orch *orchestrators.GeneOrchestrator) *GeneSearchTool {
	return &GeneSearchTool{orch: orch}
}

type geneSearchParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (t *GeneSearchTool) ValidateParams(params interface{}) error {
	var p geneSearchParams
	return decodeParams(params, &p)
}

func (t *GeneSearchTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "search_gene",
		Description: "Search MyGene.info for genes matching a free-text query.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": stringSchema("Free-text gene search query"),
				"limit": intSchema("Maximum results to return, 1-50"),
			},
			"required": []string{"query", "limit"},
		},
	}
}

func (t *GeneSearchTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p geneSearchParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	page, err := t.orch.Search(ctx, p.Query, p.Limit)
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(page)
}
