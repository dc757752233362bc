// Package app holds application-level defaults shared by the CLI.
package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - REVSTORE_CONFIG_PATH: config file location (default: ~/.config/revstore.toml)
//   - REVSTORE_HOME: base directory for revstore data (default: ~/.local/share/revstore)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking REVSTORE_CONFIG_PATH
// first, then falling back to the default ~/.config/revstore.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("REVSTORE_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "revstore.toml"), nil
}

// getBaseDir returns the base directory for revstore data, checking
// REVSTORE_HOME first, then falling back to the XDG default
// ~/.local/share/revstore.
func getBaseDir() (string, error) {
	if path := os.Getenv("REVSTORE_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "revstore"), nil
}
