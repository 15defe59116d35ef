package types

// ThemeInfo describes the visual theme of the page being transformed, fed
// into the composer's <THEME> prompt section.
type ThemeInfo struct {
	// Mode is "light" or "dark".
	Mode string `json:"mode"`

	// Colors maps CSS custom-property names (without the leading "--") to
	// their values, e.g. "accent" -> "#6b5bff".
	Colors map[string]string `json:"colors"`
}
