package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	want := DefaultConfig()
	if cfg.BackendURL != want.BackendURL {
		t.Errorf("BackendURL = %q, want %q", cfg.BackendURL, want.BackendURL)
	}
	if cfg.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", cfg.PageSize, DefaultPageSize)
	}
	if cfg.Mode != string(ModeSystem) {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeSystem)
	}
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `backend_url: http://erp.internal:9000
mode: general
page_size: 10
history_path: /tmp/custom-history.db
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.BackendURL != "http://erp.internal:9000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.Mode != string(ModeGeneral) {
		t.Errorf("Mode = %q", cfg.Mode)
	}
	if cfg.PageSize != 10 {
		t.Errorf("PageSize = %d", cfg.PageSize)
	}

	dbPath, err := cfg.HistoryDBPath()
	if err != nil {
		t.Fatalf("HistoryDBPath failed: %v", err)
	}
	if dbPath != "/tmp/custom-history.db" {
		t.Errorf("HistoryDBPath = %q", dbPath)
	}
}

func TestLoadConfig_SanitizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `mode: bogus
page_size: -1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Mode != string(ModeSystem) {
		t.Errorf("Mode = %q, want fallback %q", cfg.Mode, ModeSystem)
	}
	if cfg.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want fallback %d", cfg.PageSize, DefaultPageSize)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend_url: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed YAML should return an error")
	}
}

func TestConfigPath_Override(t *testing.T) {
	path, err := ConfigPath("/etc/erpdeck.yaml")
	if err != nil {
		t.Fatalf("ConfigPath failed: %v", err)
	}
	if path != "/etc/erpdeck.yaml" {
		t.Errorf("ConfigPath = %q, want the override", path)
	}
}
