package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath returns MISE_MCP_RUNTIME_PATH, defaulting to ~/.misemcp.
// Relative paths are resolved against the home directory.
func GetRuntimePath() string {
	path := os.Getenv("MISE_MCP_RUNTIME_PATH")
	if path == "" {
		path = ".misemcp"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
