package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetOption returns a stored setting. ok is false when it was never set.
func (db *DB) GetOption(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx, "SELECT value FROM options WHERE name = ?", name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get option %s: %w", name, err)
	}
	return value, true, nil
}

// SetOption stores a setting, replacing any previous value.
func (db *DB) SetOption(ctx context.Context, name, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO options (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, name, value)
	if err != nil {
		return fmt.Errorf("failed to set option %s: %w", name, err)
	}
	return nil
}
