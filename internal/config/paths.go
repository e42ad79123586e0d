package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// configFileBase is the file name (without extension) searched for in the
// config directory.
const configFileBase = "launcher"

// configExtensions lists the supported config file extensions in search order.
var configExtensions = []string{".yaml", ".yml", ".json", ".jsonc"}

// ConfigDir returns the directory searched for launcher config files.
//
//	macOS: ~/Library/Application Support/weatherdash
//	Linux: $XDG_CONFIG_HOME/weatherdash, falling back to ~/.config/weatherdash
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "weatherdash"), nil
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, "weatherdash"), nil
		}
		return filepath.Join(home, ".config", "weatherdash"), nil
	}
}

// findConfigFile returns the first launcher.* file present in dir, or ""
// when there is none.
func findConfigFile(dir string) string {
	for _, ext := range configExtensions {
		candidate := filepath.Join(dir, configFileBase+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Other paths are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %q: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
