// Package config loads process configuration via Viper, the way the
// teacher's internal/config did, but scoped to what biomcp's CLI/MCP/API
// surface actually needs: server bind settings, MCP transport selection,
// logging, and benchmark thresholds. Source-client credentials
// (OPENFDA_API_KEY, NCI_CTS_API_KEY, ALPHAGENOME_API_KEY,
// BIOMCP_CBIOPORTAL_STUDIES, ...) are read directly by internal/sources
// clients at construction time and are not duplicated here.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig is the REST API bind configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// MCPConfig is the MCP server's transport and capability configuration.
type MCPConfig struct {
	ServerName       string        `mapstructure:"server_name"`
	ServerVersion    string        `mapstructure:"server_version"`
	TransportType    string        `mapstructure:"transport_type"` // "stdio", "http"
	HTTPPort         int           `mapstructure:"http_port"`
	HTTPHost         string        `mapstructure:"http_host"`
	MaxClients       int           `mapstructure:"max_clients"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	EnableMetrics    bool          `mapstructure:"enable_metrics"`
	EnableCaching    bool          `mapstructure:"enable_caching"`
	ToolCacheTTL     time.Duration `mapstructure:"tool_cache_ttl"`
	ResourceCacheTTL time.Duration `mapstructure:"resource_cache_ttl"`
}

// LoggingConfig controls the shared logrus logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
	Output string `mapstructure:"output"` // "stdout" or "stderr"
}

// BenchmarkConfig controls internal/benchmark's default thresholds.
type BenchmarkConfig struct {
	LatencyThresholdPct float64 `mapstructure:"latency_threshold_pct"`
	SizeThresholdPct    float64 `mapstructure:"size_threshold_pct"`
	MaxFailFastMs       int64   `mapstructure:"max_fail_fast_ms"`
}

// Config is the complete process configuration (spec §2 "configuration is
// env-prefixed (BIOMCP_) and layered the way the teacher layers Viper
// config: defaults, then config file, then environment").
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	MCP       MCPConfig       `mapstructure:"mcp"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Benchmark BenchmarkConfig `mapstructure:"benchmark"`
}

// Manager loads and validates Config using Viper, mirroring the teacher's
// Manager shape (NewManager/GetConfig/Validate/Reload).
type Manager struct {
	config *Config
}

// NewManager creates a new configuration manager and loads configuration.
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

func (m *Manager) loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/biomcp/")

	viper.SetEnvPrefix("BIOMCP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	m.setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("mcp.server_name", "biomcp")
	viper.SetDefault("mcp.server_version", "v0.1.0")
	viper.SetDefault("mcp.transport_type", "stdio")
	viper.SetDefault("mcp.http_port", 8090)
	viper.SetDefault("mcp.http_host", "0.0.0.0")
	viper.SetDefault("mcp.max_clients", 50)
	viper.SetDefault("mcp.request_timeout", "30s")
	viper.SetDefault("mcp.enable_metrics", true)
	viper.SetDefault("mcp.enable_caching", true)
	viper.SetDefault("mcp.tool_cache_ttl", "5m")
	viper.SetDefault("mcp.resource_cache_ttl", "15m")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")

	viper.SetDefault("benchmark.latency_threshold_pct", 20.0)
	viper.SetDefault("benchmark.size_threshold_pct", 10.0)
	viper.SetDefault("benchmark.max_fail_fast_ms", 1500)
}

// GetConfig returns the complete configuration.
func (m *Manager) GetConfig() *Config {
	return m.config
}

// Reload reloads the configuration from its sources.
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate checks the loaded configuration for obviously invalid values.
func (m *Manager) Validate() error {
	config := m.config

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if config.MCP.TransportType != "stdio" && config.MCP.TransportType != "http" && config.MCP.TransportType != "http-sse" {
		return fmt.Errorf("invalid mcp transport type: %s", config.MCP.TransportType)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// IsProduction returns true if BIOMCP_ENVIRONMENT is "production".
func (m *Manager) IsProduction() bool {
	return strings.ToLower(viper.GetString("environment")) == "production"
}

// IsDevelopment returns true if BIOMCP_ENVIRONMENT is unset, "development", or "dev".
func (m *Manager) IsDevelopment() bool {
	env := strings.ToLower(viper.GetString("environment"))
	return env == "development" || env == "dev" || env == ""
}
