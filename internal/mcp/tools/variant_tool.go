package tools

import (
	"context"
	"fmt"

	"github.com/biomcp-go/biomcp/internal/mcp/protocol"
	"github.com/biomcp-go/biomcp/internal/orchestrators"
)

// VariantGetTool resolves a genomic HGVS id or rsID to its enriched record.
type VariantGetTool struct {
	orch *orchestrators.VariantOrchestrator
}

func NewVariantGetTool(orch *orchestrators.VariantOrchestrator) *VariantGetTool {
	return &VariantGetTool{orch: orch}
}

type variantGetParams struct {
	GenomicID string   `json:"genomic_id"`
	Sections  []string `json:"sections"`
}

func (t *VariantGetTool) ValidateParams(params interface{}) error {
	var p variantGetParams
	return decodeParams(params, &p)
}

func (t *VariantGetTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "get_variant",
		Description: "Resolve a genomic HGVS id or dbSNP rsID to an enriched variant record (predictions, ClinVar significance, conservation, population frequency, COSMIC context, CGI/CIViC/cBioPortal evidence, GWAS associations).",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"genomic_id": stringSchema("HGVS genomic id (e.g. chr7:g.140453136A>T) or dbSNP rsID"),
				"sections":   sectionsSchema("variant"),
			},
			"required": []string{"genomic_id"},
		},
	}
}

func (t *VariantGetTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p variantGetParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	result, err := t.orch.Get(ctx, p.GenomicID, p.Sections)
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(result)
}

// VariantSearchTool searches MyVariant.info for variants matching a query.
type VariantSearchTool struct {
	orch *orchestrators.VariantOrchestrator
}

func NewVariantSearchTool(orch *orchestrators.VariantOrchestrator) *VariantSearchTool {
	return &VariantSearchTool{orch: orch}
}

type variantSearchParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (t *VariantSearchTool) ValidateParams(params interface{}) error {
	var p variantSearchParams
	return decodeParams(params, &p)
}

func (t *VariantSearchTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "search_variant",
		Description: "Search MyVariant.info for variants matching a free-text query.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": stringSchema("Free-text variant search query"),
				"limit": intSchema("Maximum results to return, 1-50"),
			},
			"required": []string{"query", "limit"},
		},
	}
}

func (t *VariantSearchTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p variantSearchParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	page, err := t.orch.Search(ctx, p.Query, p.Limit)
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(page)
}
