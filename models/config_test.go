package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const configYAML = `
addr: ":9090"
db_path: audit.db
token_ttl: 30m
users:
  - name: admin
    password: secret
    capabilities: [manage_options, install_plugins]
  - name: editor
    password: hunter2
    capabilities: [manage_options]
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("META_AUDITOR_DB", "from-env.db")
	t.Setenv("META_AUDITOR_SECRET", "s3cret")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090 from YAML", cfg.Addr)
	}
	if cfg.DBPath != "from-env.db" {
		t.Errorf("DBPath = %q, want env override", cfg.DBPath)
	}
	if cfg.Secret != "s3cret" {
		t.Errorf("Secret = %q", cfg.Secret)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %s, want 30m", cfg.TokenTTL)
	}
	if cfg.PluginsDir != "plugins" {
		t.Errorf("PluginsDir = %q, want default", cfg.PluginsDir)
	}

	admin, ok := cfg.FindUser("admin")
	if !ok || !admin.Can(CapInstallPlugins) {
		t.Errorf("admin = %+v, %v", admin, ok)
	}
	editor, _ := cfg.FindUser("editor")
	if editor.Can(CapInstallPlugins) || !editor.Can(CapManageOptions) {
		t.Errorf("editor capabilities = %v", editor.Capabilities)
	}
	if _, ok := cfg.FindUser("nobody"); ok {
		t.Error("FindUser(nobody) found a user")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Addr != ":8080" || cfg.TokenTTL != 12*time.Hour {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("users: ["), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() expected parse error")
	}
}
