package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - GALLERY_CONFIG_PATH: config file location (default: ~/.config/gallery.toml)
//   - GALLERY_HOME: base directory for gallery data (default: ~/.local/share/gallery)
func GetDefaults() (map[string]string, error) {
	configPath, err := fromEnvOrHome("GALLERY_CONFIG_PATH", ".config", "gallery.toml")
	if err != nil {
		return nil, err
	}

	baseDir, err := fromEnvOrHome("GALLERY_HOME", ".local", "share", "gallery")
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// fromEnvOrHome returns the value of env if set, else the path under the
// user's home directory.
func fromEnvOrHome(env string, elem ...string) (string, error) {
	if path := os.Getenv(env); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, elem...)...), nil
}
