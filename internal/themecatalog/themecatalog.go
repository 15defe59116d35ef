// Package themecatalog holds the small set of built-in visual themes a page
// may be assigned, feeding composer's <THEME> prompt section (spec.md §9
// SUPPLEMENTED FEATURES).
package themecatalog

import (
	"fmt"

	"github.com/synthos/synthos/pkg/types"
)

var builtins = map[string]types.ThemeInfo{
	"light": {
		Mode: "light",
		Colors: map[string]string{
			"accent":     "#2563eb",
			"background": "#ffffff",
			"foreground": "#111827",
			"muted":      "#6b7280",
		},
	},
	"dark": {
		Mode: "dark",
		Colors: map[string]string{
			"accent":     "#6b5bff",
			"background": "#0b0f19",
			"foreground": "#f3f4f6",
			"muted":      "#9ca3af",
		},
	},
	"high-contrast": {
		Mode: "dark",
		Colors: map[string]string{
			"accent":     "#ffd60a",
			"background": "#000000",
			"foreground": "#ffffff",
			"muted":      "#cccccc",
		},
	},
}

// Lookup returns the named built-in theme. An unknown name is not an
// error-worthy condition for the caller here (internal/server then sends no
// theme with the request), so the bool result mirrors Go's comma-ok map
// idiom.
func Lookup(name string) (types.ThemeInfo, bool) {
	theme, ok := builtins[name]
	return theme, ok
}

// Names returns the configured theme names, for validation/listing.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	return names
}

// MustLookup is Lookup, panicking on an unknown name. Used only where the
// caller has already validated the name (e.g. iterating Names()).
func MustLookup(name string) types.ThemeInfo {
	theme, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("themecatalog: unknown theme %q", name))
	}
	return theme
}
