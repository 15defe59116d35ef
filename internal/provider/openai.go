package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/synthos/synthos/internal/logging"
	"github.com/synthos/synthos/pkg/types"
)

// OpenAIConfig holds the settings needed to stand up an OpenAI-backed
// completePrompt function. It also covers OpenAI-compatible endpoints
// (local servers, proxies) by way of BaseURL.
type OpenAIConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// NewOpenAI builds a types.CompletePromptFunc backed by OpenAI (or an
// OpenAI-compatible endpoint) via Eino's openai chat model.
func NewOpenAI(ctx context.Context, cfg OpenAIConfig) (types.CompletePromptFunc, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("provider: OPENAI_API_KEY not set")
	}

	modelID := cfg.Model
	if modelID == "" {
		modelID = "gpt-4o"
	}

	maxCompletionTokens := cfg.MaxTokens
	if maxCompletionTokens == 0 {
		maxCompletionTokens = 4096
	}

	einoCfg := &openai.ChatModelConfig{
		APIKey:              apiKey,
		Model:               modelID,
		MaxCompletionTokens: &maxCompletionTokens,
	}
	if cfg.BaseURL != "" {
		einoCfg.BaseURL = cfg.BaseURL
	}

	chatModel, err := openai.NewChatModel(ctx, einoCfg)
	if err != nil {
		return nil, fmt.Errorf("provider: create openai model: %w", err)
	}

	return func(args types.CompletePromptArgs) (types.CompletePromptResult, error) {
		var opts []model.Option
		if args.MaxTokens > 0 {
			opts = append(opts, openai.WithMaxCompletionTokens(args.MaxTokens))
		}

		value, err := withRetry(ctx, "openai", func() (string, error) {
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
			logging.Logger.Warn().Err(err).Str("provider", "openai").Msg("provider: generate failed after retries")
			return types.CompletePromptResult{Err: err}, err
		}

		return types.CompletePromptResult{Completed: true, Value: value}, nil
	}, nil
}
