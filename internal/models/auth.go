package models

import (
	"fmt"
	"os"
	"strings"

	"github.com/schemenav/schemenav/internal/config"
)

// ResolveAPIKey resolves the provider API key.
// Resolution order: direct config value → ${VAR} reference → driver default env.
func ResolveAPIKey(cfg config.ModelConfig) (string, error) {
	key := strings.TrimSpace(cfg.Auth.APIKey)
	if strings.HasPrefix(key, "${") && strings.HasSuffix(key, "}") {
		key = os.Getenv(key[2 : len(key)-1])
	}
	if key != "" {
		return key, nil
	}

	switch strings.ToLower(cfg.Driver) {
	case "groq":
		if key := os.Getenv("GROQ_API_KEY"); key != "" {
			return key, nil
		}
		return "", fmt.Errorf("GROQ_API_KEY not set")
	case "openai":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return key, nil
		}
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	default:
		return "", fmt.Errorf("unknown driver %q: cannot resolve api key", cfg.Driver)
	}
}
