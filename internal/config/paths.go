// Package config manages user preferences stored as JSON5/JSON files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "flipboard"

// Dir returns the flipboard config directory.
// Respects XDG_CONFIG_HOME; defaults to $HOME/.config/flipboard.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, ".config", appName), nil
}

// DataDir returns the flipboard data directory.
// Respects XDG_DATA_HOME; defaults to $HOME/.local/share/flipboard.
func DataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, ".local", "share", appName), nil
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.json"), nil
}

// HistoryDir returns the directory holding the local history store.
func HistoryDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "history"), nil
}
