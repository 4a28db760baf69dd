package tools

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/biomcp-go/biomcp/internal/mcp/protocol"
	"github.com/biomcp-go/biomcp/internal/orchestrators"
)

// ToolRegistry constructs every entity tool from a Fleet and registers it
// with the message router.
type ToolRegistry struct {
	logger *logrus.Logger
	router *protocol.MessageRouter
	fleet  *orchestrators.Fleet
}

// NewToolRegistry builds a registry that, once RegisterAllTools runs, exposes
// the get_<entity>/search_<entity> MCP tools for the orchestrators in fleet:
// a get/search pair per entity, get_pgx alone for pharmacogenomics, and
// three search-only tools for adverse events, device events and recalls.
func NewToolRegistry(logger *logrus.Logger, router *protocol.MessageRouter, fleet *orchestrators.Fleet) *ToolRegistry {
	return &ToolRegistry{logger: logger, router: router, fleet: fleet}
}

// RegisterAllTools registers every entity tool with the router.
func (tr *ToolRegistry) RegisterAllTools() error {
	handlers := map[string]protocol.ToolHandler{
		"get_gene":              NewGeneGetTool(tr.fleet.Gene),
		"search_gene":           NewGeneSearchTool(tr.fleet.Gene),
		"get_variant":           NewVariantGetTool(tr.fleet.Variant),
		"search_variant":        NewVariantSearchTool(tr.fleet.Variant),
		"get_disease":           NewDiseaseGetTool(tr.fleet.Disease),
		"search_disease":        NewDiseaseSearchTool(tr.fleet.Disease),
		"get_drug":              NewDrugGetTool(tr.fleet.Drug),
		"search_drug":           NewDrugSearchTool(tr.fleet.Drug),
		"get_article":           NewArticleGetTool(tr.fleet.Article),
		"search_article":        NewArticleSearchTool(tr.fleet.Article),
		"get_trial":             NewTrialGetTool(tr.fleet.Trial),
		"search_trial":          NewTrialSearchTool(tr.fleet.Trial),
		"get_pgx":               NewPGxGetTool(tr.fleet.PGx),
		"search_adverse_events": NewAdverseEventSearchTool(tr.fleet.AdverseEvent),
		"search_device_events":  NewDeviceEventSearchTool(tr.fleet.AdverseEvent),
		"search_drug_recalls":   NewDrugRecallSearchTool(tr.fleet.AdverseEvent),
	}

	for name, handler := range handlers {
		tr.router.RegisterToolHandler(name, handler)
		tr.logger.WithField("tool", name).Debug("registered MCP tool")
	}

	tr.logger.WithField("count", len(handlers)).Info("registered all MCP tools")
	return nil
}

// ExecuteTool looks up the named tool's handler and runs it, returning a
// MethodNotFound response for an unknown name.
func (tr *ToolRegistry) ExecuteTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	handler, ok := tr.router.GetToolHandler(req.Method)
	if !ok {
		return &protocol.JSONRPC2Response{
			Error: &protocol.RPCError{
				Code:    protocol.MethodNotFound,
				Message: fmt.Sprintf("unknown tool %q", req.Method),
			},
		}
	}
	return handler.HandleTool(ctx, req)
}

// GetRegisteredToolsInfo returns ToolInfo for every registered tool.
func (tr *ToolRegistry) GetRegisteredToolsInfo() []protocol.ToolInfo {
	handlers := tr.router.GetToolHandlers()
	infos := make([]protocol.ToolInfo, 0, len(handlers))
	for _, h := range handlers {
		infos = append(infos, h.GetToolInfo())
	}
	return infos
}

// ValidateAllTools sanity-checks that every registered tool reports a
// non-empty name and description.
func (tr *ToolRegistry) ValidateAllTools() error {
	for name, h := range tr.router.GetToolHandlers() {
		info := h.GetToolInfo()
		if info.Name == "" {
			return fmt.Errorf("tool %q has empty ToolInfo.Name", name)
		}
		if info.Description == "" {
			return fmt.Errorf("tool %q has empty ToolInfo.Description", name)
		}
	}
	return nil
}
