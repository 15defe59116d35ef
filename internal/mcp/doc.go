// Package mcp connects to a deployment's configured external connectors over
// the Model Context Protocol, using the official MCP Go SDK for the wire
// protocol. internal/connector is the package's only caller: it opens a
// Client, probes each enabled connector with AddServer, reads back its tool
// catalog with Tools, and closes the client once the <CONFIGURED_CONNECTORS>
// prompt section has been rendered.
//
// Two transports are supported:
//
//	TransportTypeRemote - SSE over HTTP, for a connector reachable by URL
//	TransportTypeStdio  - a local subprocess speaking MCP over stdin/stdout
//
// Basic usage:
//
//	client := mcp.NewClient()
//	err := client.AddServer(ctx, "weather", &mcp.Config{
//		Enabled: true,
//		Type:    mcp.TransportTypeRemote,
//		URL:     "https://weather.example.com/mcp",
//	})
//	if err != nil {
//		// connector is unreachable; internal/connector lists it anyway, flagged
//	}
//	tools := client.Tools()
//	client.Close()
package mcp
