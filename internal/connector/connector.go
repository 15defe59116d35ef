// Package connector builds the <CONFIGURED_CONNECTORS> prompt section
// (spec.md §4.2 domain stack) from the deployment's configured external MCP
// servers. It reuses internal/mcp's client to probe each connector fresh on
// every Build call: a connector whose server cannot be reached is still
// listed, but flagged, so generated page code isn't told to call something
// known to be down.
package connector

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/synthos/synthos/internal/logging"
	"github.com/synthos/synthos/internal/mcp"
	"github.com/synthos/synthos/pkg/types"
)

// Entry is one probed connector, ready to be rendered into prompt text.
type Entry struct {
	Name        string
	Description string
	Reachable   bool
	Tools       []mcp.Tool
}

// Build probes every enabled connector in cfg and renders the catalog as
// the plain-text block composer.System embeds under <CONFIGURED_CONNECTORS>.
// Returns "" if there are no enabled connectors, so the composer omits the
// section entirely.
func Build(ctx context.Context, cfg map[string]types.ConnectorConfig) string {
	entries := probe(ctx, cfg)
	if len(entries) == 0 {
		return ""
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		status := "reachable"
		if !e.Reachable {
			status = "unreachable, do not call"
		}
		fmt.Fprintf(&b, "- %s (%s): %s\n", e.Name, status, e.Description)
		for _, tool := range e.Tools {
			fmt.Fprintf(&b, "    %s: %s\n", tool.Name, tool.Description)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func probe(ctx context.Context, cfg map[string]types.ConnectorConfig) []Entry {
	var entries []Entry

	for name, c := range cfg {
		if c.Disabled {
			continue
		}

		entry := Entry{Name: name, Description: c.Description}

		client := mcp.NewClient()
		mcpCfg := &mcp.Config{Enabled: true}
		switch {
		case c.URL != "":
			mcpCfg.Type = mcp.TransportTypeRemote
			mcpCfg.URL = c.URL
		case c.Command != "":
			mcpCfg.Type = mcp.TransportTypeStdio
			mcpCfg.Command = strings.Fields(c.Command)
		default:
			entries = append(entries, entry)
			continue
		}

		if err := client.AddServer(ctx, name, mcpCfg); err != nil {
			logging.Logger.Warn().Err(err).Str("connector", name).Msg("connector: probe failed")
			entries = append(entries, entry)
			continue
		}

		entry.Reachable = true
		entry.Tools = client.Tools()
		client.Close()

		entries = append(entries, entry)
	}

	return entries
}
