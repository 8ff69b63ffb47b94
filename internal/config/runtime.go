package config

import (
	"os"
	"path/filepath"
)

func resolveRuntimePath(path string) string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, path)
}

func GetRuntimePath() string {
	path := os.Getenv("RAGCHAT_RUNTIME_PATH")
	if path == "" {
		path = ".ragchat"
	}

	if !filepath.IsAbs(path) {
		path = resolveRuntimePath(path)
	}
	return path
}
