package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/synthos/synthos/internal/logging"
	"github.com/synthos/synthos/pkg/types"
)

// AnthropicConfig holds the settings needed to stand up a Claude-backed
// completePrompt function.
type AnthropicConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// NewAnthropic builds a types.CompletePromptFunc backed by Anthropic Claude
// via Eino's claude chat model.
func NewAnthropic(ctx context.Context, cfg AnthropicConfig) (types.CompletePromptFunc, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("provider: ANTHROPIC_API_KEY not set")
	}

	modelID := cfg.Model
	if modelID == "" {
		modelID = "claude-sonnet-4-20250514"
	}

	einoCfg := &claude.Config{
		APIKey: apiKey,
		Model:  modelID,
	}
	if cfg.BaseURL != "" {
		einoCfg.BaseURL = &cfg.BaseURL
	}

	chatModel, err := claude.NewChatModel(ctx, einoCfg)
	if err != nil {
		return nil, fmt.Errorf("provider: create claude model: %w", err)
	}

	return func(args types.CompletePromptArgs) (types.CompletePromptResult, error) {
		maxTokens := args.MaxTokens
		if maxTokens == 0 {
			maxTokens = cfg.MaxTokens
		}

		var opts []model.Option
		if maxTokens > 0 {
			opts = append(opts, model.WithMaxTokens(maxTokens))
		}

		value, err := withRetry(ctx, "anthropic", func() (string, error) {
			resp, err := chatModel.Generate(ctx, []*schema.Message{
				{Role: schema.System, Content: args.System.Content},
				{Role: schema.User, Content: args.Prompt.Content},
			}, opts...)
			if err != nil {
				return "", err
			}
			return resp.Content, nil
		})
		if err != nil {
			logging.Logger.Warn().Err(err).Str("provider", "anthropic").Msg("provider: generate failed after retries")
			return types.CompletePromptResult{Err: err}, err
		}

		return types.CompletePromptResult{Completed: true, Value: value}, nil
	}, nil
}
