// Package script renders the <SERVER_SCRIPTS> prompt section and resolves
// invocations of POST /api/scripts/{id} (spec.md §4.2, §9 SUPPLEMENTED
// FEATURES) against the deployment's configured script catalog.
package script

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/synthos/synthos/pkg/types"
)

// ErrDisabled is returned by Lookup when the named script exists but is
// disabled.
var ErrDisabled = errors.New("script: disabled")

// ErrNotFound is returned by Lookup when no script is configured under the
// given id.
var ErrNotFound = errors.New("script: not found")

// Build renders the enabled scripts in cfg as the plain-text block the
// composer embeds under <SERVER_SCRIPTS>. Returns "" for an empty or
// fully-disabled catalog.
func Build(cfg map[string]types.ScriptConfig) string {
	ids := enabledIDs(cfg)
	if len(ids) == 0 {
		return ""
	}

	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteString("\n")
		}
		s := cfg[id]
		fmt.Fprintf(&b, "- %s: %s\n", id, s.Description)
		if len(s.Variables) > 0 {
			names := make([]string, 0, len(s.Variables))
			for name := range s.Variables {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(&b, "    %s: %s\n", name, s.Variables[name])
			}
		}
		if s.Response != "" {
			fmt.Fprintf(&b, "    returns: %s\n", s.Response)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Lookup resolves id against cfg, enforcing that the script exists and is
// enabled before the server-side handler invokes it.
func Lookup(cfg map[string]types.ScriptConfig, id string) (types.ScriptConfig, error) {
	s, ok := cfg[id]
	if !ok {
		return types.ScriptConfig{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if s.Disabled {
		return types.ScriptConfig{}, fmt.Errorf("%w: %s", ErrDisabled, id)
	}
	return s, nil
}

func enabledIDs(cfg map[string]types.ScriptConfig) []string {
	var ids []string
	for id, s := range cfg {
		if s.Disabled {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
