package models

import (
	"fmt"
	"strings"
)

// HandleError folds raw provider errors into stable categories before
// they are logged. Groq speaks the OpenAI wire protocol, so its
// failures surface as OpenAI-style codes; ollama fails in its own
// dialect ("try pulling it first") or at the TCP dial when the daemon
// is down. Unrecognized errors pass through unchanged.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	switch {
	case matchesAny(msg, "invalid api key", "invalid_api_key", "401", "unauthorized", "403", "forbidden"):
		return fmt.Errorf("authentication failed (check GROQ_API_KEY): %w", err)
	case matchesAny(msg, "429", "rate limit", "rate_limit_exceeded", "over capacity", "quota"):
		return fmt.Errorf("rate limited: %w", err)
	case matchesAny(msg, "context length", "request too large", "reduce the length", "token limit"):
		return fmt.Errorf("context too long: %w", err)
	case matchesAny(msg, "model_decommissioned", "model not found", "try pulling it first", "404"):
		return fmt.Errorf("model not found: %w", err)
	case matchesAny(msg, "connection refused", "no such host", "timeout", "eof", "dial"):
		return fmt.Errorf("connection error: %w", err)
	}
	return err
}

func matchesAny(msg string, fragments ...string) bool {
	for _, f := range fragments {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}
