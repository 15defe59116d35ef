package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthos/synthos/pkg/types"
)

func TestNewRegistry_SkipsUnknownProviders(t *testing.T) {
	cfg := types.Config{
		ProviderCredentials: map[string]types.ProviderCredential{
			"unknown-vendor": {APIKey: "x"},
		},
	}

	_, err := NewRegistry(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewRegistry_RegistersConfiguredAnthropic(t *testing.T) {
	cfg := types.Config{
		Provider: "anthropic",
		Model:    "claude-sonnet-4-20250514",
		ProviderCredentials: map[string]types.ProviderCredential{
			"anthropic": {APIKey: "test-key"},
		},
	}

	reg, err := NewRegistry(context.Background(), cfg)
	require.NoError(t, err)
	assert.Contains(t, reg.Names(), "anthropic")

	fn, err := reg.Resolve("anthropic")
	require.NoError(t, err)
	assert.NotNil(t, fn)
}

func TestRegistry_ResolveUnknownProviderErrors(t *testing.T) {
	cfg := types.Config{
		ProviderCredentials: map[string]types.ProviderCredential{
			"anthropic": {APIKey: "test-key"},
		},
	}
	reg, err := NewRegistry(context.Background(), cfg)
	require.NoError(t, err)

	_, err = reg.Resolve("openai")
	assert.Error(t, err)
}
