package config

import (
	"os"
	"path/filepath"
)

// SchemeNavPath returns the root directory for SchemeNav data.
// It uses $SCHEMENAV_PATH if set, otherwise defaults to ~/.schemenav.
func SchemeNavPath() string {
	if v := os.Getenv("SCHEMENAV_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".schemenav")
	}
	return filepath.Join(home, ".schemenav")
}

// ConfigPath returns the path to the SchemeNav config file.
func ConfigPath() string {
	return filepath.Join(SchemeNavPath(), "config.jsonc")
}

// DotenvPath returns the path to the SchemeNav .env file.
func DotenvPath() string {
	return filepath.Join(SchemeNavPath(), ".env")
}
