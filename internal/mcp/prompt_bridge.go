package mcp

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/biomcp-go/biomcp/internal/mcp/prompts"
	"github.com/biomcp-go/biomcp/internal/mcp/protocol"
)

// PromptHandlerBridge adapts one prompts.PromptTemplate onto
// protocol.PromptHandler so prompts/list and prompts/get reach the
// biomcp-domain prompt templates.
type PromptHandlerBridge struct {
	name     string
	template prompts.PromptTemplate
	logger   *logrus.Logger
}

func NewPromptHandlerBridge(name string, template prompts.PromptTemplate, logger *logrus.Logger) *PromptHandlerBridge {
	return &PromptHandlerBridge{name: name, template: template, logger: logger}
}

func (b *PromptHandlerBridge) ValidateParams(params interface{}) error {
	args, err := toArgsMap(params)
	if err != nil {
		return err
	}
	return b.template.ValidateArguments(args)
}

func (b *PromptHandlerBridge) GetPromptInfo() protocol.PromptInfo {
	info := b.template.GetPromptInfo()
	args := make([]protocol.PromptArgument, 0, len(info.Arguments))
	for _, a := range info.Arguments {
		args = append(args, protocol.PromptArgument{
			Name:        a.Name,
			Description: a.Description,
			Required:    a.Required,
		})
	}
	return protocol.PromptInfo{
		Name:        info.Name,
		Description: info.Description,
		Arguments:   args,
	}
}

func (b *PromptHandlerBridge) HandlePrompt(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var params struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if req.Params != nil {
		if raw, err := json.Marshal(req.Params); err == nil {
			_ = json.Unmarshal(raw, &params)
		}
	}

	rendered, err := b.template.RenderPrompt(ctx, params.Arguments)
	if err != nil {
		return &protocol.JSONRPC2Response{
			Error: &protocol.RPCError{
				Code:    protocol.MCPToolError,
				Message: err.Error(),
			},
		}
	}

	return &protocol.JSONRPC2Response{
		Result: map[string]interface{}{
			"description": b.template.GetPromptInfo().Description,
			"messages": []map[string]interface{}{
				{"role": "system", "content": rendered.SystemPrompt},
				{"role": "user", "content": rendered.UserPrompt},
			},
		},
	}
}

func toArgsMap(params interface{}) (map[string]interface{}, error) {
	if params == nil {
		return map[string]interface{}{}, nil
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	var args struct {
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, err
	}
	if args.Arguments != nil {
		return args.Arguments, nil
	}
	var direct map[string]interface{}
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct, nil
	}
	return map[string]interface{}{}, nil
}
