// Package models defines data structures for configuration, records and queries.
package models

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Capabilities checked by the server.
const (
	CapManageOptions  = "manage_options"
	CapInstallPlugins = "install_plugins"
)

// Config holds runtime configuration. Values come from defaults, then the
// optional YAML file, then environment variables, then CLI flags.
type Config struct {
	Addr         string        `yaml:"addr" env:"META_AUDITOR_ADDR"`
	DBPath       string        `yaml:"db_path" env:"META_AUDITOR_DB"`
	Secret       string        `yaml:"secret" env:"META_AUDITOR_SECRET"`
	PluginsDir   string        `yaml:"plugins_dir" env:"META_AUDITOR_PLUGINS_DIR"`
	DirectoryURL string        `yaml:"directory_url" env:"META_AUDITOR_DIRECTORY_URL"`
	NewImportURL string        `yaml:"new_import_url" env:"META_AUDITOR_NEW_IMPORT_URL"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"META_AUDITOR_TOKEN_TTL"`
	Users        []User        `yaml:"users"`
}

// User is an operator allowed to use the server.
type User struct {
	Name         string   `yaml:"name"`
	Password     string   `yaml:"password"`
	Capabilities []string `yaml:"capabilities"`
}

// Can reports whether the user holds the capability.
func (u User) Can(capability string) bool {
	return slices.Contains(u.Capabilities, capability)
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		DBPath:       "meta-auditor.db",
		PluginsDir:   "plugins",
		DirectoryURL: "https://api.wordpress.org/plugins/info/1.2/",
		NewImportURL: "/wp-admin/edit.php?post_type=wpai-import&page=new",
		TokenTTL:     12 * time.Hour,
	}
}

// LoadConfig builds a Config from defaults, the YAML file at path (skipped
// when path is empty or the file does not exist) and the environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse env: %w", err)
	}
	return cfg, nil
}

// FindUser returns the configured user with the given name.
func (c Config) FindUser(name string) (User, bool) {
	for _, u := range c.Users {
		if u.Name == name {
			return u, true
		}
	}
	return User{}, false
}
