package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient()
	assert.NotNil(t, client)
	assert.Empty(t, client.servers)
}

func TestClient_Tools_Empty(t *testing.T) {
	client := NewClient()
	assert.Empty(t, client.Tools())
}

func TestClient_Close(t *testing.T) {
	client := NewClient()
	assert.NoError(t, client.Close())
}

func TestAddServer_DisabledConfigRecordsStatusWithoutConnecting(t *testing.T) {
	client := NewClient()
	err := client.AddServer(context.Background(), "weather", &Config{Enabled: false})
	require.NoError(t, err)

	server := client.servers["weather"]
	require.NotNil(t, server)
	assert.Equal(t, statusDisabled, server.status)
	assert.Empty(t, client.Tools())
}

func TestAddServer_DuplicateNameErrors(t *testing.T) {
	client := NewClient()
	require.NoError(t, client.AddServer(context.Background(), "weather", &Config{Enabled: false}))

	err := client.AddServer(context.Background(), "weather", &Config{Enabled: false})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAddServer_UnreachableRemoteConnectorErrors(t *testing.T) {
	client := NewClient()
	err := client.AddServer(context.Background(), "dead", &Config{
		Enabled: true,
		Type:    TransportTypeRemote,
		URL:     "http://127.0.0.1:1/mcp",
		Timeout: 50,
	})
	assert.Error(t, err)

	server := client.servers["dead"]
	require.NotNil(t, server)
	assert.Equal(t, statusFailed, server.status)
}

func TestAddServer_UnknownTransportTypeErrors(t *testing.T) {
	client := NewClient()
	err := client.AddServer(context.Background(), "odd", &Config{Enabled: true, Type: "carrier-pigeon"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport type")
}

func TestAddServer_StdioWithEmptyCommandErrors(t *testing.T) {
	client := NewClient()
	err := client.AddServer(context.Background(), "local", &Config{Enabled: true, Type: TransportTypeStdio})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty command")
}

func TestTools_PrefixesNameWithServerAndSkipsUnconnected(t *testing.T) {
	client := NewClient()
	client.servers["weather"] = &mcpServer{
		name:   "weather",
		status: statusConnected,
		tools:  []Tool{{Name: "forecast", Description: "get a forecast"}},
	}
	client.servers["notes"] = &mcpServer{
		name:   "notes",
		status: statusFailed,
		tools:  []Tool{{Name: "search", Description: "search notes"}},
	}

	tools := client.Tools()
	require.Len(t, tools, 1)
	assert.Equal(t, "weather_forecast", tools[0].Name)
	assert.Equal(t, "get a forecast", tools[0].Description)
}

func TestSanitizeToolName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", "simple"},
		{"with-dash", "with_dash"},
		{"with_underscore", "with_underscore"},
		{"with.dot", "with_dot"},
		{"with space", "with_space"},
		{"CamelCase", "CamelCase"},
		{"with123numbers", "with123numbers"},
		{"special!@#chars", "special___chars"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeToolName(tt.input))
		})
	}
}

func TestConfig(t *testing.T) {
	config := Config{
		Enabled: true,
		Type:    TransportTypeRemote,
		URL:     "http://localhost:8080",
		Headers: map[string]string{"Authorization": "Bearer token"},
		Timeout: 5000,
	}

	assert.True(t, config.Enabled)
	assert.Equal(t, TransportTypeRemote, config.Type)
	assert.Equal(t, "http://localhost:8080", config.URL)
	assert.Equal(t, "Bearer token", config.Headers["Authorization"])
	assert.Equal(t, 5000, config.Timeout)
}

func TestConfig_Local(t *testing.T) {
	config := Config{
		Enabled:     true,
		Type:        TransportTypeLocal,
		Command:     []string{"mcp-server", "--port", "8080"},
		Environment: map[string]string{"DEBUG": "true"},
	}

	assert.Equal(t, TransportTypeLocal, config.Type)
	assert.Len(t, config.Command, 3)
	assert.Equal(t, "mcp-server", config.Command[0])
	assert.Equal(t, "true", config.Environment["DEBUG"])
}

func TestTool(t *testing.T) {
	schema := json.RawMessage(`{"type": "object", "properties": {"name": {"type": "string"}}}`)
	tool := Tool{Name: "test_tool", Description: "A test tool", InputSchema: schema}

	assert.Equal(t, "test_tool", tool.Name)
	assert.Equal(t, "A test tool", tool.Description)
	assert.NotNil(t, tool.InputSchema)
}

func TestTransportType_Constants(t *testing.T) {
	assert.Equal(t, TransportType("remote"), TransportTypeRemote)
	assert.Equal(t, TransportType("local"), TransportTypeLocal)
	assert.Equal(t, TransportType("stdio"), TransportTypeStdio)
}
