// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default locations, relative to the user's home directory.
const (
	defaultDatabasePath = ".local/share/riskline/riskline.db"
	defaultArtifactsDir = ".local/share/riskline/artifacts"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DatabasePath resolves the run-history database path, falling back to the
// default under the home directory when unset.
func DatabasePath(configured string) string {
	if configured != "" {
		return ExpandPath(configured)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDatabasePath
	}
	return filepath.Join(home, defaultDatabasePath)
}

// ArtifactsDir resolves the model artifact directory.
func ArtifactsDir(configured string) string {
	if configured != "" {
		return ExpandPath(configured)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultArtifactsDir
	}
	return filepath.Join(home, defaultArtifactsDir)
}
