// Package config loads the synthosd server's configuration.
//
// # Configuration Loading
//
// Load implements a three-source strategy, applied in priority order (later
// sources win on scalar fields, and merge key-by-key into map fields):
//
//  1. Global config (~/.config/synthos/synthos.json(c))
//  2. Project config (directory/.synthos/synthos.json(c))
//  3. Environment variables
//
// A directory's .env file is loaded (via godotenv) before step 3, so a
// provider API key placed there is picked up as an environment override
// without needing to be repeated in a checked-in config file.
//
// # Supported Formats
//
// Both .json and .jsonc (JSON with // and /* */ comments stripped before
// parsing) are accepted; a project's .jsonc, if present, is loaded after
// its .json sibling and wins on any field both set.
//
// # Environment Variable Overrides
//
//   - ANTHROPIC_API_KEY / OPENAI_API_KEY / ARK_API_KEY - provider credentials,
//     applied only where no API key is configured for that provider
//   - SYNTHOS_PROVIDER - override the active provider name
//   - SYNTHOS_MODEL - override the active model
//   - SYNTHOS_CACHE_DIR - override internal/pagecache's directory
//   - SYNTHOS_VERBOSE_DEBUG - enable the I/O-accounting gateway wrapper
//
// # Path Management
//
// Paths follows the XDG Base Directory layout:
//   - Data: ~/.local/share/synthos (XDG_DATA_HOME)
//   - Config: ~/.config/synthos (XDG_CONFIG_HOME)
//   - Cache: ~/.cache/synthos (XDG_CACHE_HOME)
//   - State: ~/.local/state/synthos (XDG_STATE_HOME)
//
// On Windows these fall back to APPDATA.
package config
