package models

import (
	"context"
	"strings"
	"time"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/schemenav/schemenav/internal/config"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// NewOpenAI creates a ChatModel for any OpenAI-compatible endpoint.
func NewOpenAI(ctx context.Context, cfg config.ModelConfig, apiKey string) (model.BaseChatModel, error) {
	modelConfig := &einoopenai.ChatModelConfig{
		APIKey: apiKey,
		Model:  cfg.Model,
	}

	if cfg.BaseURL != "" {
		modelConfig.BaseURL = cfg.BaseURL
	} else if strings.EqualFold(cfg.Driver, "groq") {
		modelConfig.BaseURL = groqBaseURL
	}

	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		modelConfig.MaxCompletionTokens = &maxTokens
	}

	if cfg.Timeout.Duration() > 0 {
		modelConfig.Timeout = cfg.Timeout.Duration()
	} else {
		modelConfig.Timeout = 60 * time.Second
	}

	if cfg.Temperature != nil {
		t := float32(*cfg.Temperature)
		modelConfig.Temperature = &t
	}

	return einoopenai.NewChatModel(ctx, modelConfig)
}
