package tools

import (
	"encoding/json"
	"fmt"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/mcp/protocol"
)

// decodeParams marshals params back to JSON and unmarshals it into target,
// the same generic bridge ParseParams uses, kept here so every entity tool
// shares one implementation.
func decodeParams(params interface{}, target interface{}) error {
	if params == nil {
		return fmt.Errorf("missing required parameters")
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal parameters: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to parse parameters: %w", err)
	}
	return nil
}

// errorResponse maps a biomcperr.Error (or any error) to a JSON-RPC error
// response, preserving the Kind-specific message and picking the closest
// RPCError code.
func errorResponse(err error) *protocol.JSONRPC2Response {
	code := protocol.MCPToolError
	if be, ok := err.(*biomcperr.Error); ok {
		switch be.Kind {
		case biomcperr.KindInvalidArgument:
			code = protocol.InvalidParams
		case biomcperr.KindNotFound:
			code = protocol.MCPResourceError
		case biomcperr.KindAPIKeyRequired:
			code = protocol.MCPUnauthorized
		case biomcperr.KindSourceUnavail, biomcperr.KindHTTP, biomcperr.KindAPI, biomcperr.KindAPIJSON:
			code = protocol.MCPToolError
		}
	}
	return &protocol.JSONRPC2Response{
		Error: &protocol.RPCError{
			Code:    code,
			Message: "Tool execution failed",
			Data:    err.Error(),
		},
	}
}

func resultResponse(result interface{}) *protocol.JSONRPC2Response {
	return &protocol.JSONRPC2Response{Result: result}
}

func stringSchema(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func sectionsSchema(entityKind string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": fmt.Sprintf("%s sections to include; pass [\"all\"] for every section", entityKind),
	}
}

func intSchema(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}
