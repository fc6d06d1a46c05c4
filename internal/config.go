package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the erpdeck settings loaded from the YAML config file.
type Config struct {
	BackendURL  string `yaml:"backend_url"`
	Mode        string `yaml:"mode"`
	PageSize    int    `yaml:"page_size"`
	HistoryPath string `yaml:"history_path"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		BackendURL: "http://localhost:8090",
		Mode:       string(ModeSystem),
		PageSize:   DefaultPageSize,
	}
}

// ConfigPath resolves the config file location. An explicit override wins;
// otherwise ~/.config/erpdeck/config.yaml.
func ConfigPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "erpdeck", "config.yaml"), nil
}

// LoadConfig reads the config file, applying defaults for anything unset. A
// missing file is not an error: defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			LogDebug("No config file at %s, using defaults", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultConfig().BackendURL
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultPageSize
	}
	switch Mode(cfg.Mode) {
	case ModeSystem, ModeGeneral:
	default:
		cfg.Mode = string(ModeSystem)
	}
	return cfg, nil
}

// HistoryDBPath resolves the history database location: the configured path,
// or ~/.local/share/erpdeck/history.db.
func (c Config) HistoryDBPath() (string, error) {
	if c.HistoryPath != "" {
		return c.HistoryPath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "erpdeck", "history.db"), nil
}
