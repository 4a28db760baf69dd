package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biomcp-go/biomcp/internal/config"
)

func newTestConfigManager(t *testing.T) *config.Manager {
	t.Helper()
	m, err := config.NewManager()
	require.NoError(t, err)
	return m
}

func TestNewServer(t *testing.T) {
	configManager := newTestConfigManager(t)

	server, err := NewServer(configManager)

	require.NoError(t, err)
	assert.NotNil(t, server)
	assert.NotNil(t, server.mcpServer)
	assert.NotNil(t, server.logger)
}

func TestNewServer_RegistersAllEntityTools(t *testing.T) {
	configManager := newTestConfigManager(t)

	server, err := NewServer(configManager)
	require.NoError(t, err)

	infos := server.toolRegistry.GetRegisteredToolsInfo()
	names := make(map[string]bool, len(infos))
	for _, info := range infos {
		names[info.Name] = true
	}

	for _, want := range []string{
		"get_gene", "search_gene",
		"get_variant", "search_variant",
		"get_disease", "search_disease",
		"get_drug", "search_drug",
		"get_article", "search_article",
		"get_trial", "search_trial",
		"get_pgx",
		"search_adverse_events", "search_device_events", "search_drug_recalls",
	} {
		assert.True(t, names[want], "expected tool %q to be registered", want)
	}
}

func TestServerInfo(t *testing.T) {
	configManager := newTestConfigManager(t)
	server, err := NewServer(configManager)
	require.NoError(t, err)

	assert.NotNil(t, server.mcpServer)
	assert.NotNil(t, server.config)
	assert.NotNil(t, server.logger)
}
