package models

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/schemenav/schemenav/internal/config"
)

func TestResolveAPIKey_Direct(t *testing.T) {
	cfg := config.ModelConfig{
		Driver: "groq",
		Auth:   config.AuthConfig{APIKey: "gsk-test-123"},
	}
	key, err := ResolveAPIKey(cfg)
	if err != nil {
		t.Fatalf("ResolveAPIKey: %v", err)
	}
	if key != "gsk-test-123" {
		t.Fatalf("expected gsk-test-123, got %q", key)
	}
}

func TestResolveAPIKey_EnvVarSyntax(t *testing.T) {
	t.Setenv("MY_CUSTOM_KEY", "custom-api-key-value")

	cfg := config.ModelConfig{
		Driver: "openai",
		Auth:   config.AuthConfig{APIKey: "${MY_CUSTOM_KEY}"},
	}
	key, err := ResolveAPIKey(cfg)
	if err != nil {
		t.Fatalf("ResolveAPIKey: %v", err)
	}
	if key != "custom-api-key-value" {
		t.Fatalf("expected custom-api-key-value, got %q", key)
	}
}

func TestResolveAPIKey_DriverDefaultEnv(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk-from-env")

	cfg := config.ModelConfig{Driver: "groq"}
	key, err := ResolveAPIKey(cfg)
	if err != nil {
		t.Fatalf("ResolveAPIKey: %v", err)
	}
	if key != "gsk-from-env" {
		t.Fatalf("expected gsk-from-env, got %q", key)
	}
}

func TestResolveAPIKey_Missing(t *testing.T) {
	os.Unsetenv("GROQ_API_KEY")

	cfg := config.ModelConfig{Driver: "groq"}
	if _, err := ResolveAPIKey(cfg); err == nil {
		t.Fatal("expected error when no key is available")
	}
}

func TestCreateModel_UnknownDriver(t *testing.T) {
	_, err := CreateModel(context.Background(), config.ModelConfig{Driver: "palm"})
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if !strings.Contains(err.Error(), "unknown driver") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHandleError(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"received 401 unauthorized", "authentication failed"},
		{"error code invalid_api_key", "GROQ_API_KEY"},
		{"429 too many requests", "rate limited"},
		{"rate_limit_exceeded: tokens per minute", "rate limited"},
		{"request exceeds context length", "context too long"},
		{"request too large for model", "context too long"},
		{"model not found", "model not found"},
		{"model_decommissioned: llama2-70b-4096", "model not found"},
		{`model "llama3" not found, try pulling it first`, "model not found"},
		{"dial tcp: connection refused", "connection error"},
		{"some opaque failure", "some opaque failure"},
	}
	for _, tc := range cases {
		got := HandleError(errors.New(tc.in))
		if !strings.Contains(got.Error(), tc.want) {
			t.Errorf("HandleError(%q) = %q, want containing %q", tc.in, got, tc.want)
		}
	}
	if HandleError(nil) != nil {
		t.Error("HandleError(nil) must be nil")
	}
}
