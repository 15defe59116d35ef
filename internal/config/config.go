// Package config loads the synthosd server configuration: global config,
// project-local config, and environment variables, in that precedence
// order (spec.md §9 ambient stack).
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"

	"github.com/synthos/synthos/pkg/types"
)

// Load loads configuration from multiple sources (priority order):
//  1. Global config (~/.config/synthos/synthos.json(c))
//  2. Project config (directory/.synthos/synthos.json(c))
//  3. .env file in directory (loaded into the process environment, not
//     merged directly — it only feeds step 4)
//  4. Environment variables
func Load(directory string) (*types.Config, error) {
	cfg := &types.Config{
		ProviderCredentials: make(map[string]types.ProviderCredential),
		Connectors:          make(map[string]types.ConnectorConfig),
		Agents:              make(map[string]types.AgentConfig),
		Scripts:             make(map[string]types.ScriptConfig),
	}

	globalPath := GetPaths().Config
	loadConfigFile(filepath.Join(globalPath, "synthos.json"), cfg)
	loadConfigFile(filepath.Join(globalPath, "synthos.jsonc"), cfg)

	if directory != "" {
		if err := godotenv.Load(filepath.Join(directory, ".env")); err != nil && !os.IsNotExist(err) {
			// A malformed .env is not fatal; env overrides below still apply
			// from whatever the process already had.
		}
		loadConfigFile(filepath.Join(directory, ".synthos", "synthos.json"), cfg)
		loadConfigFile(filepath.Join(directory, ".synthos", "synthos.jsonc"), cfg)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadConfigFile loads a single config file, merging it into cfg. A missing
// file is not an error.
func loadConfigFile(path string, cfg *types.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	data = jsonc.ToJSON(data)

	var fileConfig types.Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return err
	}

	mergeConfig(cfg, &fileConfig)
	return nil
}

// mergeConfig merges source into target, field by field; maps are merged
// key-by-key so a project config can override a single provider/agent/script
// without having to repeat the whole global catalog.
func mergeConfig(target, source *types.Config) {
	if source.Schema != "" {
		target.Schema = source.Schema
	}
	if source.Provider != "" {
		target.Provider = source.Provider
	}
	if source.Model != "" {
		target.Model = source.Model
	}
	if source.MaxTokens != 0 {
		target.MaxTokens = source.MaxTokens
	}
	if source.VerboseDebug {
		target.VerboseDebug = true
	}
	if source.CacheDir != "" {
		target.CacheDir = source.CacheDir
	}

	if len(source.ProviderCredentials) > 0 {
		if target.ProviderCredentials == nil {
			target.ProviderCredentials = make(map[string]types.ProviderCredential)
		}
		for k, v := range source.ProviderCredentials {
			target.ProviderCredentials[k] = v
		}
	}
	if len(source.Connectors) > 0 {
		if target.Connectors == nil {
			target.Connectors = make(map[string]types.ConnectorConfig)
		}
		for k, v := range source.Connectors {
			target.Connectors[k] = v
		}
	}
	if len(source.Agents) > 0 {
		if target.Agents == nil {
			target.Agents = make(map[string]types.AgentConfig)
		}
		for k, v := range source.Agents {
			target.Agents[k] = v
		}
	}
	if len(source.Scripts) > 0 {
		if target.Scripts == nil {
			target.Scripts = make(map[string]types.ScriptConfig)
		}
		for k, v := range source.Scripts {
			target.Scripts[k] = v
		}
	}
}

// providerEnvKeys maps a provider name to the environment variable its API
// key is conventionally read from.
var providerEnvKeys = map[string]string{
	"anthropic": "ANTHROPIC_API_KEY",
	"claude":    "ANTHROPIC_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"ark":       "ARK_API_KEY",
}

// applyEnvOverrides applies environment variable overrides, the highest
// precedence layer.
func applyEnvOverrides(cfg *types.Config) {
	for name, envVar := range providerEnvKeys {
		apiKey := os.Getenv(envVar)
		if apiKey == "" {
			continue
		}
		if cfg.ProviderCredentials == nil {
			cfg.ProviderCredentials = make(map[string]types.ProviderCredential)
		}
		cred := cfg.ProviderCredentials[name]
		if cred.APIKey == "" {
			cred.APIKey = apiKey
			cfg.ProviderCredentials[name] = cred
		}
	}

	if provider := os.Getenv("SYNTHOS_PROVIDER"); provider != "" {
		cfg.Provider = provider
	}
	if model := os.Getenv("SYNTHOS_MODEL"); model != "" {
		cfg.Model = model
	}
	if cacheDir := os.Getenv("SYNTHOS_CACHE_DIR"); cacheDir != "" {
		cfg.CacheDir = cacheDir
	}
	if os.Getenv("SYNTHOS_VERBOSE_DEBUG") == "true" {
		cfg.VerboseDebug = true
	}
}

// Save writes cfg to path as indented JSON, creating parent directories as
// needed.
func Save(cfg *types.Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
