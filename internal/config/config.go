package config

import "time"

// Config is the root configuration for SchemeNav.
type Config struct {
	Server    ServerConfig    `json:"server"`
	Client    ClientConfig    `json:"client"`
	Model     ModelConfig     `json:"model"`
	Retrieval RetrievalConfig `json:"retrieval"`
	Log       LogConfig       `json:"log"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// ClientConfig holds the settings used by the chat and ask commands.
type ClientConfig struct {
	BaseURL string   `json:"base_url"`
	Timeout Duration `json:"timeout,omitempty"`
}

// ModelConfig configures the LLM provider behind the answer pipeline.
type ModelConfig struct {
	Driver      string     `json:"driver"` // "groq", "openai", "ollama"
	Model       string     `json:"model"`
	BaseURL     string     `json:"base_url,omitempty"`
	Auth        AuthConfig `json:"auth"`
	MaxTokens   int        `json:"max_tokens,omitempty"`
	Temperature *float64   `json:"temperature,omitempty"`
	Timeout     Duration   `json:"timeout,omitempty"`
}

// AuthConfig configures API key resolution.
type AuthConfig struct {
	APIKey string `json:"api_key,omitempty"` // Direct key, ${VAR}, or ${{ .Env.VAR }} template
}

// RetrievalConfig configures the scheme document store.
type RetrievalConfig struct {
	DBPath string `json:"db_path"`
	TopK   int    `json:"top_k"`
}

// LogConfig configures the interaction log.
type LogConfig struct {
	Interactions string `json:"interactions"` // JSONL file path
}

// Duration wraps time.Duration for JSON unmarshaling.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	// Remove quotes
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}
