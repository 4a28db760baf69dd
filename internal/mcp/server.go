package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/biomcp-go/biomcp/internal/config"
	"github.com/biomcp-go/biomcp/internal/mcp/prompts"
	"github.com/biomcp-go/biomcp/internal/mcp/protocol"
	"github.com/biomcp-go/biomcp/internal/mcp/resources"
	"github.com/biomcp-go/biomcp/internal/mcp/tools"
	"github.com/biomcp-go/biomcp/internal/mcp/transport"
	"github.com/biomcp-go/biomcp/internal/orchestrators"
	"github.com/biomcp-go/biomcp/internal/substrate"
)

// Server is the biomcp MCP server: one tool per entity operation, fanned
// out over the orchestrator Fleet.
type Server struct {
	config          *config.Manager
	mcpServer       *mcp.Server
	transportMgr    *transport.Manager
	activeTransport transport.Transport
	protocolCore    *protocol.ProtocolCore
	router          *protocol.MessageRouter
	toolRegistry    *tools.ToolRegistry
	resourceManager *resources.ResourceManager
	promptManager   *prompts.PromptManager
	logger          *logrus.Logger
}

// entityResourceKinds are the resource URI prefixes wired to the fleet-backed
// entity resource provider (spec §5 resources surface).
var entityResourceKinds = []string{"gene", "variant", "disease", "drug", "article", "trial"}

// NewServer creates a new MCP server instance wired to a fresh Fleet built
// on the shared substrate client.
func NewServer(configManager *config.Manager) (*Server, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := configManager.GetConfig()
	mcpConfig := &cfg.MCP

	transportMgr := transport.NewManager(logger, mcpConfig)
	protocolCore := protocol.NewProtocolCore(logger)
	router := protocol.NewMessageRouter(logger)

	client, err := substrate.Get(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize substrate client: %w", err)
	}
	fleet := orchestrators.NewFleet(client, logger)

	toolRegistry := tools.NewToolRegistry(logger, router, fleet)
	if err := toolRegistry.RegisterAllTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	if err := toolRegistry.ValidateAllTools(); err != nil {
		return nil, fmt.Errorf("tool validation failed: %w", err)
	}

	serverInfo := &mcp.Implementation{
		Name:    mcpConfig.ServerName,
		Version: mcpConfig.ServerVersion,
	}
	mcpServer := mcp.NewServer(serverInfo, nil)

	resourceManager := resources.NewResourceManager(logger)
	entityProvider := resources.NewEntityResourceProvider(logger, fleet)
	resourceManager.RegisterProvider("entity", entityProvider)
	for _, kind := range entityResourceKinds {
		pattern := "entity://" + kind + "/"
		router.RegisterResourceHandler(pattern, NewResourceHandlerBridge(entityProvider, pattern, logger))
	}

	promptManager := prompts.NewPromptManager(logger)
	promptTemplates := map[string]prompts.PromptTemplate{
		"gene_summary":      prompts.NewGeneSummaryPrompt(),
		"pgx_consult":       prompts.NewPGxConsultPrompt(),
		"literature_review": prompts.NewLiteratureReviewPrompt(),
	}
	for name, template := range promptTemplates {
		promptManager.RegisterTemplate(name, template)
		router.RegisterPromptHandler(name, NewPromptHandlerBridge(name, template, logger))
	}

	server := &Server{
		config:          configManager,
		mcpServer:       mcpServer,
		transportMgr:    transportMgr,
		protocolCore:    protocolCore,
		router:          router,
		toolRegistry:    toolRegistry,
		resourceManager: resourceManager,
		promptManager:   promptManager,
		logger:          logger,
	}

	if err := server.registerMCPTools(mcpServer, toolRegistry); err != nil {
		return nil, fmt.Errorf("failed to register MCP tools: %w", err)
	}

	return server, nil
}

// registerMCPTools bridges every tool in toolRegistry into the MCP SDK server.
func (s *Server) registerMCPTools(mcpServer *mcp.Server, toolRegistry *tools.ToolRegistry) error {
	toolsInfo := toolRegistry.GetRegisteredToolsInfo()

	for _, toolInfo := range toolsInfo {
		toolDef := &mcp.Tool{
			Name:        toolInfo.Name,
			Description: toolInfo.Description,
			// The full JSON-schema InputSchema lives on toolInfo and is
			// enforced by each handler's ValidateParams/decodeParams;
			// it is not threaded through mcp.Tool here (teacher does the
			// same, see the original TODO this replaces).
		}

		handler := NewMCPToolHandler(toolRegistry, toolInfo.Name, s.logger)
		mcpServer.AddTool(toolDef, handler)

		s.logger.WithField("tool_name", toolInfo.Name).Debug("registered MCP tool")
	}

	s.logger.WithField("tool_count", len(toolsInfo)).Info("registered all tools with MCP SDK")
	return nil
}

// Start starts the MCP server with the appropriate transport and blocks
// until ctx is cancelled or the server exits.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting biomcp MCP server")

	activeTransport, err := s.transportMgr.StartTransport(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transport: %w", err)
	}

	s.activeTransport = activeTransport
	s.logger.WithField("transport_type", activeTransport.GetType()).Info("transport initialized")

	mcpTransport := NewMCPTransportBridge(activeTransport, s.logger)

	if err := s.mcpServer.Run(ctx, mcpTransport); err != nil {
		s.activeTransport.Close()
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.activeTransport != nil {
		s.activeTransport.Close()
	}
	return nil
}
