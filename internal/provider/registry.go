package provider

import (
	"context"
	"fmt"

	"github.com/synthos/synthos/pkg/types"
)

// Registry resolves a configured provider name to its completePrompt
// function. Built once at startup from types.Config.ProviderCredentials and
// handed to internal/server, which plugs the resolved function into every
// types.TransformRequest it builds.
type Registry struct {
	funcs   map[string]types.CompletePromptFunc
	ordered []string
}

// Names returns the registered provider names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.ordered...)
}

// Resolve returns the completePrompt function registered under name.
func (r *Registry) Resolve(name string) (types.CompletePromptFunc, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("provider: %q is not configured", name)
	}
	return fn, nil
}

// NewRegistry builds every provider named in cfg.ProviderCredentials;
// cfg.Model is the model for the credential named by cfg.Provider when that
// credential sets none. A provider with no credential entry is not built,
// and no default is registered. A credential whose backend
// cannot be constructed (missing key, unreachable) is skipped rather than
// failing the whole registry — the server reports a per-request error only
// if the specific provider a request names was skipped.
func NewRegistry(ctx context.Context, cfg types.Config) (*Registry, error) {
	reg := &Registry{funcs: make(map[string]types.CompletePromptFunc)}

	for name, cred := range cfg.ProviderCredentials {
		model := cred.Model
		if model == "" && cfg.Provider == name {
			model = cfg.Model
		}
		fn, err := build(ctx, name, cred, model, cfg.MaxTokens)
		if err != nil {
			continue
		}
		reg.funcs[name] = fn
		reg.ordered = append(reg.ordered, name)
	}

	if len(reg.funcs) == 0 {
		return nil, fmt.Errorf("provider: no provider could be initialized from configuration")
	}

	return reg, nil
}

func build(ctx context.Context, name string, cred types.ProviderCredential, model string, maxTokens int) (types.CompletePromptFunc, error) {
	switch name {
	case "anthropic", "claude":
		return NewAnthropic(ctx, AnthropicConfig{
			APIKey:    cred.APIKey,
			BaseURL:   cred.BaseURL,
			Model:     model,
			MaxTokens: maxTokens,
		})
	case "openai":
		return NewOpenAI(ctx, OpenAIConfig{
			APIKey:    cred.APIKey,
			BaseURL:   cred.BaseURL,
			Model:     model,
			MaxTokens: maxTokens,
		})
	case "ark":
		return NewArk(ctx, ArkConfig{
			APIKey:    cred.APIKey,
			BaseURL:   cred.BaseURL,
			Model:     model,
			MaxTokens: maxTokens,
		})
	default:
		return nil, fmt.Errorf("provider: unknown provider %q", name)
	}
}
