// Package models creates chat model clients from provider configuration.
package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"

	"github.com/schemenav/schemenav/internal/config"
)

// CreateModel creates a chat model from the configured provider.
// Groq speaks the OpenAI-compatible API, so it shares the openai driver
// with a different default base URL and API key env var.
func CreateModel(ctx context.Context, cfg config.ModelConfig) (model.BaseChatModel, error) {
	switch strings.ToLower(cfg.Driver) {
	case "groq", "openai":
		apiKey, err := ResolveAPIKey(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve api key: %w", err)
		}
		return NewOpenAI(ctx, cfg, apiKey)
	case "ollama":
		return NewOllama(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown driver: %s", cfg.Driver)
	}
}
