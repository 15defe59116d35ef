// Package mcp is the thin Model Context Protocol client internal/connector
// uses to probe a deployment's configured external connectors: connect once
// per connector, list its tools, and disconnect. It wraps the official MCP
// Go SDK rather than reimplementing the wire protocol.
package mcp

import (
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Config is one connector's transport configuration, built from the
// deployment's types.ConnectorConfig (spec.md §4.2 domain stack).
type Config struct {
	Enabled     bool              `json:"enabled"`
	Type        TransportType     `json:"type"`
	URL         string            `json:"url,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Command     []string          `json:"command,omitempty"`
	Environment map[string]string `json:"environment,omitempty"`
	Timeout     int               `json:"timeout,omitempty"` // milliseconds
}

// TransportType selects how a connector is reached.
type TransportType string

const (
	TransportTypeRemote TransportType = "remote"
	TransportTypeLocal  TransportType = "local"
	TransportTypeStdio  TransportType = "stdio"
)

// Tool is one tool a connector exposes, as rendered under
// <CONFIGURED_CONNECTORS> (spec.md §4.2).
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// FromSDKTool converts an SDK tool into the shape internal/connector embeds
// in its prompt text.
func FromSDKTool(t *sdkmcp.Tool) Tool {
	var schema json.RawMessage
	if t.InputSchema != nil {
		schema, _ = json.Marshal(t.InputSchema)
	}
	return Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: schema,
	}
}

// status is the connection state of one probed connector. It never leaves
// the package — internal/connector only cares about the boolean Reachable
// flag on its own Entry, computed from whether AddServer returned an error.
type status string

const (
	statusDisabled   status = "disabled"
	statusFailed     status = "failed"
	statusConnecting status = "connecting"
	statusConnected  status = "connected"
)
