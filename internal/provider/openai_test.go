package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAI_RequiresAPIKeyOrBaseURL(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewOpenAI(context.Background(), OpenAIConfig{})
	assert.Error(t, err)
}

func TestNewOpenAI_AllowsBaseURLWithoutKey(t *testing.T) {
	fn, err := NewOpenAI(context.Background(), OpenAIConfig{BaseURL: "http://localhost:11434/v1"})
	require.NoError(t, err)
	assert.NotNil(t, fn)
}

func TestNewOpenAI_BuildsFuncWithExplicitKey(t *testing.T) {
	fn, err := NewOpenAI(context.Background(), OpenAIConfig{APIKey: "test-key", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.NotNil(t, fn)
}
