package tools

import (
	"context"
	"fmt"

	"github.com/biomcp-go/biomcp/internal/mcp/protocol"
	"github.com/biomcp-go/biomcp/internal/orchestrators"
)

// DiseaseGetTool resolves a disease name or ontology id to its enriched record.
type DiseaseGetTool struct {
	orch *orchestrators.DiseaseOrchestrator
}

func NewDiseaseGetTool(orch *orchestrators.DiseaseOrchestrator) *DiseaseGetTool {
	return &DiseaseGetTool{orch: orch}
}

type diseaseGetParams struct {
	Query    string   `json:"query"`
	Sections []string `json:"sections"`
}

func (t *DiseaseGetTool) ValidateParams(params interface{}) error {
	var p diseaseGetParams
	return decodeParams(params, &p)
}

func (t *DiseaseGetTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "get_disease",
		Description: "Resolve a disease name or ontology id to an enriched disease record (associated genes, pathways, phenotypes, variants, models, prevalence, CIViC evidence).",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query":    stringSchema("Disease name or ontology id, e.g. \"melanoma\" or \"MONDO:0005105\""),
				"sections": sectionsSchema("disease"),
			},
			"required": []string{"query"},
		},
	}
}

func (t *DiseaseGetTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p diseaseGetParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	result, err := t.orch.Get(ctx, p.Query, p.Sections)
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(result)
}

// DiseaseSearchTool searches MyDisease.info for diseases matching a query.
type DiseaseSearchTool struct {
	orch *orchestrators.DiseaseOrchestrator
}

func NewDiseaseSearchTool(orch *orchestrators.DiseaseOrchestrator) *DiseaseSearchTool {
	return &DiseaseSearchTool{orch: orch}
}

type diseaseSearchParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (t *DiseaseSearchTool) ValidateParams(params interface{}) error {
	var p diseaseSearchParams
	return decodeParams(params, &p)
}

func (t *DiseaseSearchTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "search_disease",
		Description: "Search MyDisease.info for diseases matching a free-text query.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": stringSchema("Free-text disease search query"),
				"limit": intSchema("Maximum results to return, 1-50"),
			},
			"required": []string{"query", "limit"},
		},
	}
}

func (t *DiseaseSearchTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p diseaseSearchParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	page, err := t.orch.Search(ctx, p.Query, p.Limit)
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(page)
}
