package tools

import (
	"context"
	"fmt"

	"github.com/biomcp-go/biomcp/internal/mcp/protocol"
	"github.com/biomcp-go/biomcp/internal/orchestrators"
)

// AdverseEventSearchTool searches openFDA FAERS drug adverse-event reports.
type AdverseEventSearchTool struct {
	orch *orchestrators.AdverseEventOrchestrator
}

func NewAdverseEventSearchTool(orch *orchestrators.AdverseEventOrchestrator) *AdverseEventSearchTool {
	return &AdverseEventSearchTool{orch: orch}
}

type adverseEventSearchParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (t *AdverseEventSearchTool) ValidateParams(params interface{}) error {
	var p adverseEventSearchParams
	return decodeParams(params, &p)
}

func (t *AdverseEventSearchTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "search_adverse_events",
		Description: "Search openFDA FAERS for drug adverse-event reports matching a suspect-drug query.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": stringSchema("Suspect drug name, e.g. \"vemurafenib\""),
				"limit": intSchema("Maximum results to return, 1-50"),
			},
			"required": []string{"query", "limit"},
		},
	}
}

func (t *AdverseEventSearchTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p adverseEventSearchParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	events, err := t.orch.SearchDrugEvents(ctx, p.Query, p.Limit)
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(events)
}

// DeviceEventSearchTool searches openFDA MAUDE device adverse-event reports.
type DeviceEventSearchTool struct {
	orch *orchestrators.AdverseEventOrchestrator
}

func NewDeviceEventSearchTool(orch *orchestrators.AdverseEventOrchestrator) *DeviceEventSearchTool {
	return &DeviceEventSearchTool{orch: orch}
}

func (t *DeviceEventSearchTool) ValidateParams(params interface{}) error {
	var p adverseEventSearchParams
	return decodeParams(params, &p)
}

func (t *DeviceEventSearchTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "search_device_events",
		Description: "Search openFDA MAUDE for medical device adverse-event reports matching a query.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": stringSchema("Device name query"),
				"limit": intSchema("Maximum results to return, 1-50"),
			},
			"required": []string{"query", "limit"},
		},
	}
}

func (t *DeviceEventSearchTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p adverseEventSearchParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	events, err := t.orch.SearchDeviceEvents(ctx, p.Query, p.Limit)
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(events)
}

// DrugRecallSearchTool searches openFDA drug enforcement recall reports.
type DrugRecallSearchTool struct {
	orch *orchestrators.AdverseEventOrchestrator
}

func NewDrugRecallSearchTool(orch *orchestrators.AdverseEventOrchestrator) *DrugRecallSearchTool {
	return &DrugRecallSearchTool{orch: orch}
}

type drugRecallSearchParams struct {
	Product string `json:"product"`
	Limit   int    `json:"limit"`
}

func (t *DrugRecallSearchTool) ValidateParams(params interface{}) error {
	var p drugRecallSearchParams
	return decodeParams(params, &p)
}

func (t *DrugRecallSearchTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "search_drug_recalls",
		Description: "Search openFDA drug enforcement reports for recalls matching a product name.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"product": stringSchema("Product name query"),
				"limit":   intSchema("Maximum results to return, 1-50"),
			},
			"required": []string{"product", "limit"},
		},
	}
}

func (t *DrugRecallSearchTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p drugRecallSearchParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	recalls, err := t.orch.SearchRecalls(ctx, p.Product, p.Limit)
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(recalls)
}
