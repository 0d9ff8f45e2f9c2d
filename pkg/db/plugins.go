package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/meta-auditor/models"
)

// IsPluginActive reports whether the plugin with the given main file is
// installed and active.
func (db *DB) IsPluginActive(ctx context.Context, file string) (bool, error) {
	var active bool
	err := db.QueryRowContext(ctx, "SELECT active FROM plugins WHERE file = ?", file).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check plugin %s: %w", file, err)
	}
	return active, nil
}

// RegisterPlugin records an installed plugin, replacing an earlier install
// of the same file.
func (db *DB) RegisterPlugin(ctx context.Context, p models.Plugin) error {
	installedAt := p.InstalledAt
	if installedAt.IsZero() {
		installedAt = time.Now()
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO plugins (file, slug, name, version, active, installed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(file) DO UPDATE SET
			slug = excluded.slug, name = excluded.name, version = excluded.version,
			active = excluded.active, installed_at = excluded.installed_at
	`, p.File, p.Slug, p.Name, p.Version, p.Active, installedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to register plugin: %w", err)
	}
	return nil
}

// ErrPluginNotFound is returned by GetPlugin for an unregistered file.
var ErrPluginNotFound = errors.New("plugin not found")

// GetPlugin returns the registry entry for a plugin file.
func (db *DB) GetPlugin(ctx context.Context, file string) (*models.Plugin, error) {
	var p models.Plugin
	var installedAt string
	err := db.QueryRowContext(ctx, `
		SELECT file, slug, name, version, active, installed_at FROM plugins WHERE file = ?
	`, file).Scan(&p.File, &p.Slug, &p.Name, &p.Version, &p.Active, &installedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPluginNotFound, file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plugin: %w", err)
	}
	p.InstalledAt, _ = time.Parse(time.RFC3339, installedAt)
	return &p, nil
}
