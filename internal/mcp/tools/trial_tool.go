package tools

import (
	"context"
	"fmt"

	"github.com/biomcp-go/biomcp/internal/mcp/protocol"
	"github.com/biomcp-go/biomcp/internal/orchestrators"
)

// TrialGetTool resolves an NCT id or NCI CTS id to its trial record.
type TrialGetTool struct {
	orch *orchestrators.TrialOrchestrator
}

func NewTrialGetTool(orch *orchestrators.TrialOrchestrator) *TrialGetTool {
	return &TrialGetTool{orch: orch}
}

type trialGetParams struct {
	ID string `json:"id"`
}

func (t *TrialGetTool) ValidateParams(params interface{}) error {
	var p trialGetParams
	return decodeParams(params, &p)
}

func (t *TrialGetTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "get_trial",
		Description: "Resolve a ClinicalTrials.gov NCT id or NCI CTS id to its trial record.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": stringSchema("NCT id, e.g. \"NCT02186821\", or NCI CTS id"),
			},
			"required": []string{"id"},
		},
	}
}

func (t *TrialGetTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p trialGetParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	trial, err := t.orch.Get(ctx, p.ID)
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(trial)
}

// TrialSearchTool searches ClinicalTrials.gov for studies matching a query.
type TrialSearchTool struct {
	orch *orchestrators.TrialOrchestrator
}

func NewTrialSearchTool(orch *orchestrators.TrialOrchestrator) *TrialSearchTool {
	return &TrialSearchTool{orch: orch}
}

type trialSearchParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (t *TrialSearchTool) ValidateParams(params interface{}) error {
	var p trialSearchParams
	return decodeParams(params, &p)
}

func (t *TrialSearchTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "search_trial",
		Description: "Search ClinicalTrials.gov for studies matching a free-text query.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": stringSchema("Free-text trial search query, e.g. \"BRAF melanoma\""),
				"limit": intSchema("Maximum results to return, 1-50"),
			},
			"required": []string{"query", "limit"},
		},
	}
}

func (t *TrialSearchTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p trialSearchParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	trials, err := t.orch.Search(ctx, p.Query, p.Limit)
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(trials)
}
