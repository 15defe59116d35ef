package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/synthos/synthos/internal/logging"
	"github.com/synthos/synthos/pkg/types"
)

// ArkConfig holds the settings needed to stand up a Volcengine ARK-backed
// completePrompt function.
type ArkConfig struct {
	APIKey    string
	BaseURL   string
	Model     string // ARK endpoint id
	MaxTokens int
}

// NewArk builds a types.CompletePromptFunc backed by Volcengine ARK via
// Eino's ark chat model.
func NewArk(ctx context.Context, cfg ArkConfig) (types.CompletePromptFunc, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ARK_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("provider: ARK_API_KEY not set")
	}

	modelID := cfg.Model
	if modelID == "" {
		modelID = os.Getenv("ARK_MODEL_ID")
	}
	if modelID == "" {
		return nil, fmt.Errorf("provider: ARK_MODEL_ID not set")
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	einoCfg := &ark.ChatModelConfig{
		APIKey:    apiKey,
		Model:     modelID,
		MaxTokens: &maxTokens,
	}
	if cfg.BaseURL != "" {
		einoCfg.BaseURL = cfg.BaseURL
	}

	chatModel, err := ark.NewChatModel(ctx, einoCfg)
	if err != nil {
		return nil, fmt.Errorf("provider: create ark model: %w", err)
	}

	return func(args types.CompletePromptArgs) (types.CompletePromptResult, error) {
		var opts []model.Option
		if args.MaxTokens > 0 {
			opts = append(opts, model.WithMaxTokens(args.MaxTokens))
		}

		value, err := withRetry(ctx, "ark", func() (string, error) {
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
			logging.Logger.Warn().Err(err).Str("provider", "ark").Msg("provider: generate failed after retries")
			return types.CompletePromptResult{Err: err}, err
		}

		return types.CompletePromptResult{Completed: true, Value: value}, nil
	}, nil
}
