// Package agentconfig renders the <CONFIGURED_AGENTS> prompt section from a
// deployment's configured agent catalog (spec.md §4.2 domain stack). Each
// configured agent restricts which server-side scripts (internal/script) it
// may reach via glob patterns matched with doublestar, the same wildcard
// matcher the teacher repo uses for its own permission globs.
package agentconfig

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/synthos/synthos/pkg/types"
)

// Build renders the enabled agents in cfg as the plain-text block the
// composer embeds under <CONFIGURED_AGENTS>. Returns "" for an empty or
// fully-disabled catalog.
func Build(cfg map[string]types.AgentConfig) string {
	names := enabledNames(cfg)
	if len(names) == 0 {
		return ""
	}

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString("\n")
		}
		agent := cfg[name]
		fmt.Fprintf(&b, "- %s: %s\n", name, agent.Description)
		if len(agent.ScriptPatterns) > 0 {
			fmt.Fprintf(&b, "    allowed scripts: %s\n", strings.Join(agent.ScriptPatterns, ", "))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// CanUseScript reports whether the named agent's configured script patterns
// allow it to invoke scriptID. An agent with no patterns configured may use
// no scripts; an unknown agent name may use none either.
func CanUseScript(cfg map[string]types.AgentConfig, agentName, scriptID string) bool {
	agent, ok := cfg[agentName]
	if !ok || agent.Disabled {
		return false
	}

	for _, pattern := range agent.ScriptPatterns {
		if matched, _ := doublestar.Match(pattern, scriptID); matched {
			return true
		}
	}
	return false
}

func enabledNames(cfg map[string]types.AgentConfig) []string {
	var names []string
	for name, agent := range cfg {
		if agent.Disabled {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
