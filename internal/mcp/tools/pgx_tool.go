package tools

import (
	"context"
	"fmt"

	"github.com/biomcp-go/biomcp/internal/mcp/protocol"
	"github.com/biomcp-go/biomcp/internal/orchestrators"
)

// PGxGetTool resolves a gene+drug pair to its pharmacogenomic recommendations.
type PGxGetTool struct {
	orch *orchestrators.PGxOrchestrator
}

func NewPGxGetTool(orch *orchestrators.PGxOrchestrator) *PGxGetTool {
	return &PGxGetTool{orch: orch}
}

type pgxGetParams struct {
	Gene string `json:"gene"`
	Drug string `json:"drug"`
}

func (t *PGxGetTool) ValidateParams(params interface{}) error {
	var p pgxGetParams
	return decodeParams(params, &p)
}

func (t *PGxGetTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "get_pgx",
		Description: "Resolve a gene+drug pair to CPIC dosing recommendations, PharmGKB allele frequencies, and guideline text. If drug is omitted, returns PharmGKB's gene-level clinical annotations instead.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"gene": stringSchema("Gene symbol, e.g. \"CYP2C19\""),
				"drug": stringSchema("Drug name, e.g. \"clopidogrel\"; omit for a gene-level lookup"),
			},
			"required": []string{"gene"},
		},
	}
}

func (t *PGxGetTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var p pgxGetParams
	if err := decodeParams(req.Params, &p); err != nil {
		return errorResponse(fmt.Errorf("%w", err))
	}
	if p.Drug == "" {
		annotations, err := t.orch.GetByGene(ctx, p.Gene)
		if err != nil {
			return errorResponse(err)
		}
		return resultResponse(annotations)
	}
	result, err := t.orch.Get(ctx, p.Gene, p.Drug)
	if err != nil {
		return errorResponse(err)
	}
	return resultResponse(result)
}
