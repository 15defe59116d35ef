package types

// Config is the synthosd server configuration, loaded by internal/config
// from the global config dir, a project-local .synthos/ directory, and
// environment variables (global -> project -> env precedence).
type Config struct {
	// Schema reference (for editor support).
	Schema string `json:"$schema,omitempty"`

	// Provider selects which internal/provider adapter backs completePrompt,
	// and which model it asks for.
	Provider string `json:"provider,omitempty"` // "anthropic" | "openai" | "ark"
	Model    string `json:"model,omitempty"`

	// MaxTokens is the default completion budget for the first-pass call;
	// the repair call always uses min(MaxTokens, 4096) per spec.md §4.6.
	MaxTokens int `json:"maxTokens,omitempty"`

	// VerboseDebug enables the I/O character-accounting gateway wrapper
	// (spec.md §4.3).
	VerboseDebug bool `json:"verboseDebug,omitempty"`

	// CacheDir is the directory internal/pagecache stores stripped HTML and
	// per-page metadata under.
	CacheDir string `json:"cacheDir,omitempty"`

	// ProviderCredentials holds per-provider API keys/base URLs.
	ProviderCredentials map[string]ProviderCredential `json:"providerCredentials,omitempty"`

	// Connectors, Agents, Scripts are the static catalogs a deployment
	// configures; internal/connector, internal/agentconfig, and
	// internal/script format these into the composer's prompt sections.
	Connectors map[string]ConnectorConfig `json:"connectors,omitempty"`
	Agents     map[string]AgentConfig     `json:"agents,omitempty"`
	Scripts    map[string]ScriptConfig    `json:"scripts,omitempty"`
}

// ProviderCredential holds the API key/base URL for one LLM provider.
type ProviderCredential struct {
	APIKey  string `json:"apiKey,omitempty"`
	BaseURL string `json:"baseURL,omitempty"`
	// Model overrides Config.Model for this provider specifically.
	Model string `json:"model,omitempty"`
}

// ConnectorConfig describes one configured connector (an external MCP
// server a generated page's code may be told it can call through).
type ConnectorConfig struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Command     string `json:"command,omitempty"`
	URL         string `json:"url,omitempty"`
	Disabled    bool   `json:"disabled,omitempty"`
}

// AgentConfig describes one configured agent the page may address (a
// distinct assistant persona/toolset, not the core's own transform loop).
type AgentConfig struct {
	Description    string   `json:"description,omitempty"`
	ScriptPatterns []string `json:"scriptPatterns,omitempty"` // doublestar glob patterns
	Disabled       bool     `json:"disabled,omitempty"`
}

// ScriptConfig describes one server-side script exposed at
// POST /api/scripts/{id}.
type ScriptConfig struct {
	Description string            `json:"description"`
	Variables   map[string]string `json:"variables,omitempty"` // name -> type description
	Response    string            `json:"response,omitempty"`  // response type description
	Disabled    bool              `json:"disabled,omitempty"`
}
