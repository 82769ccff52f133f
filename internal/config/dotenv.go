package config

import (
	"os"
	"strings"
)

// LoadDotenv applies KEY=VALUE pairs from a .env file to the process
// environment. Provider secrets (GROQ_API_KEY and friends) stay out of
// config.jsonc; the .env next to it is where they live for local runs.
// Variables already set in the environment win over the file, and a
// missing file is not an error.
func LoadDotenv(path string) error {
	pairs, err := parseDotenv(path)
	if err != nil {
		return err
	}
	for key, value := range pairs {
		if _, set := os.LookupEnv(key); !set {
			os.Setenv(key, value)
		}
	}
	return nil
}

func parseDotenv(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	pairs := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Tolerate shell-style "export KEY=VALUE" lines so the same
		// file can be sourced directly.
		line = strings.TrimPrefix(line, "export ")

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		pairs[key] = unquoteValue(strings.TrimSpace(value))
	}
	return pairs, nil
}

// unquoteValue strips one level of matching single or double quotes.
func unquoteValue(v string) string {
	if len(v) < 2 {
		return v
	}
	if q := v[0]; (q == '"' || q == '\'') && v[len(v)-1] == q {
		return v[1 : len(v)-1]
	}
	return v
}
