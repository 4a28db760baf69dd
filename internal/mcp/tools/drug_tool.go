package tools

import (
	"context"
	"fmt"

	"github.com/biomcp-go/biomcp/internal/mcp/protocol"
	"github.com/biomcp-go/biomcp/internal/orchestrators"
)

// DrugGetTool resolves a drug name or id to its enriched record.
type DrugGetTool struct {
	orch *orchestrators.DrugOrchestrator
}

func NewDrugGetTool(orch *orchestrators.DrugOrchestrator) *DrugGetTool {
	return &DrugGetTool{orch: orch}
}

type drugGetParams struct {
	NameOrID string   `json:"name_or_id"`
	Sections []string `json:"sections"`
}

func (t *DrugGetTool) ValidateParams(params interface{}) error {
	var p drugGetParams
	return decodeParams(params, &p)
}

func (t *DrugGetTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "get_drug",
		Description: "Resolve a drug name or chemical id to an enriched drug record (label, shortage status, targets, indications, interactions, CIViC evidence, approvals, adverse events).",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name_or_id": stringSchema("Drug name or chemical id, e.g. \"vemurafenib\""),
				"sections":   sectionsSchema("drug"),
			},
			"required": []string{"name_or_id"},
		},
	}
}

func (t *DrugGetTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p drugGetParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	result, err := t.orch.Get(ctx, p.NameOrID, p.Sections)
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(result)
}

// DrugSearchTool searches MyChem.info for drugs matching a query.
type DrugSearchTool struct {
	orch *orchestrators.DrugOrchestrator
}

func NewDrugSearchTool(orch *orchestrators.DrugOrchestrator) *DrugSearchTool {
	return &DrugSearchTool{orch: orch}
}

type drugSearchParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (t *DrugSearchTool) ValidateParams(params interface{}) error {
	var p drugSearchParams
	return decodeParams(params, &p)
}

func (t *DrugSearchTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "search_drug",
		Description: "Search MyChem.info for drugs matching a free-text query.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": stringSchema("Free-text drug search query"),
				"limit": intSchema("Maximum results to return, 1-50"),
			},
			"required": []string{"query", "limit"},
		},
	}
}

func (t *DrugSearchTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p drugSearchParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	page, err := t.orch.Search(ctx, p.Query, p.Limit)
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(page)
}
