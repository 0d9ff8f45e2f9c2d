package db

import (
	"context"
	"fmt"
	"time"
)

// ConsumeToken marks a token ID as spent. It returns false when the ID was
// already spent. Expired rows are pruned on the way.
func (db *DB) ConsumeToken(ctx context.Context, jti string, expires time.Time) (bool, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := db.ExecContext(ctx, "DELETE FROM used_tokens WHERE expires_at < ?", now); err != nil {
		return false, fmt.Errorf("failed to prune tokens: %w", err)
	}

	result, err := db.ExecContext(ctx,
		"INSERT OR IGNORE INTO used_tokens (jti, expires_at) VALUES (?, ?)",
		jti, expires.UTC().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("failed to consume token: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to consume token: %w", err)
	}
	return n == 1, nil
}
