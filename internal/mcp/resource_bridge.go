package mcp

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/biomcp-go/biomcp/internal/mcp/protocol"
	"github.com/biomcp-go/biomcp/internal/mcp/resources"
)

// ResourceHandlerBridge adapts the resources package's ResourceProvider (one
// provider serving many URIs) onto protocol.ResourceHandler (one handler
// instance registered per URI pattern), so resources/list and resources/read
// reach the live fleet-backed entity provider.
type ResourceHandlerBridge struct {
	provider   resources.ResourceProvider
	uriPattern string
	logger     *logrus.Logger
}

func NewResourceHandlerBridge(provider resources.ResourceProvider, uriPattern string, logger *logrus.Logger) *ResourceHandlerBridge {
	return &ResourceHandlerBridge{provider: provider, uriPattern: uriPattern, logger: logger}
}

func (b *ResourceHandlerBridge) ValidateURI(uri string) error {
	if !b.provider.SupportsURI(uri) {
		return resourceURIUnsupportedError(uri)
	}
	return nil
}

func (b *ResourceHandlerBridge) GetResourceInfo() protocol.ResourceInfo {
	info := b.provider.GetProviderInfo()
	return protocol.ResourceInfo{
		URI:         b.uriPattern,
		Name:        info.Name,
		Description: info.Description,
		MimeType:    "application/json",
	}
}

func (b *ResourceHandlerBridge) HandleResource(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	var params struct {
		URI string `json:"uri"`
	}
	if req.Params != nil {
		if raw, err := json.Marshal(req.Params); err == nil {
			_ = json.Unmarshal(raw, &params)
		}
	}

	content, err := b.provider.GetResource(ctx, params.URI)
	if err != nil {
		return &protocol.JSONRPC2Response{
			Error: &protocol.RPCError{
				Code:    protocol.MCPResourceError,
				Message: err.Error(),
			},
		}
	}

	return &protocol.JSONRPC2Response{
		Result: map[string]interface{}{
			"contents": []map[string]interface{}{
				{
					"uri":      content.URI,
					"mimeType": content.MimeType,
					"text":     content.Content,
				},
			},
		},
	}
}

func resourceURIUnsupportedError(uri string) error {
	return &unsupportedURIError{uri: uri}
}

type unsupportedURIError struct{ uri string }

func (e *unsupportedURIError) Error() string {
	return "unsupported resource URI: " + e.uri
}
