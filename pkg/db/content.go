package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/meta-auditor/models"
)

// AuditStatuses are the post statuses included in a report.
var AuditStatuses = []string{"publish", "draft", "pending"}

// Post is a content record as written to the store.
type Post struct {
	Title     string
	Type      string
	Status    string
	URL       string // optional; crawled records are keyed by it
	Modified  time.Time
	MetaTitle string
	MetaDesc  string
	FocusKW   string
}

const fetchRecordsQuery = `
	SELECT p.id, p.title, p.type, p.modified,
		COALESCE((SELECT meta_value FROM postmeta WHERE post_id = p.id AND meta_key = ?), ''),
		COALESCE((SELECT meta_value FROM postmeta WHERE post_id = p.id AND meta_key = ?), ''),
		COALESCE((SELECT meta_value FROM postmeta WHERE post_id = p.id AND meta_key = ?), '')
	FROM posts p
	WHERE p.type = ? AND p.status IN (?, ?, ?)
	ORDER BY p.id
`

// FetchRecords returns every published, draft and pending record of each
// type, grouped by type in the order given.
func (db *DB) FetchRecords(ctx context.Context, types []string) ([]models.Record, error) {
	var out []models.Record
	for _, typ := range types {
		records, err := db.fetchType(ctx, typ)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}
	return out, nil
}

func (db *DB) fetchType(ctx context.Context, typ string) ([]models.Record, error) {
	rows, err := db.QueryContext(ctx, fetchRecordsQuery,
		models.MetaKeyTitle, models.MetaKeyDesc, models.MetaKeyFocusKW,
		typ, AuditStatuses[0], AuditStatuses[1], AuditStatuses[2])
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records: %w", typ, err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		var modified string
		if err := rows.Scan(&r.ID, &r.Title, &r.Type, &modified, &r.MetaTitle, &r.MetaDesc, &r.FocusKW); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.Modified = formatModified(modified)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s records: %w", typ, err)
	}
	return records, nil
}

// formatModified renders the stored timestamp as a date. Values that are
// not RFC 3339 are shown unchanged.
func formatModified(v string) string {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return v
	}
	return t.Format("2006-01-02")
}

// PublicPostTypes lists the types shown as checkboxes, by name.
func (db *DB) PublicPostTypes(ctx context.Context) ([]models.PostType, error) {
	rows, err := db.QueryContext(ctx, "SELECT name, label, public FROM post_types WHERE public = 1 ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list post types: %w", err)
	}
	defer rows.Close()

	var types []models.PostType
	for rows.Next() {
		var pt models.PostType
		if err := rows.Scan(&pt.Name, &pt.Label, &pt.Public); err != nil {
			return nil, fmt.Errorf("failed to scan post type: %w", err)
		}
		types = append(types, pt)
	}
	return types, rows.Err()
}

// RegisterPostType adds or relabels a content type.
func (db *DB) RegisterPostType(ctx context.Context, pt models.PostType) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO post_types (name, label, public) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET label = excluded.label, public = excluded.public
	`, pt.Name, pt.Label, pt.Public)
	if err != nil {
		return fmt.Errorf("failed to register post type: %w", err)
	}
	return nil
}

// InsertPost stores a record and its SEO metadata, returning the new ID.
func (db *DB) InsertPost(ctx context.Context, p Post) (int64, error) {
	var id int64
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = insertPost(ctx, tx, p)
		if err != nil {
			return err
		}
		return setPostMeta(ctx, tx, id, p)
	})
	return id, err
}

// UpsertPostByURL inserts a record keyed by URL, or refreshes the title,
// metadata and modified time of the record already stored for that URL.
func (db *DB) UpsertPostByURL(ctx context.Context, p Post) (int64, error) {
	if p.URL == "" {
		return 0, errors.New("post URL is required")
	}

	var id int64
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, "SELECT id FROM posts WHERE url = ?", p.URL).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			id, err = insertPost(ctx, tx, p)
			if err != nil {
				return err
			}
		case err != nil:
			return fmt.Errorf("failed to check existing post: %w", err)
		default:
			_, err = tx.ExecContext(ctx, "UPDATE posts SET title = ?, modified = ? WHERE id = ?",
				p.Title, modifiedValue(p.Modified), id)
			if err != nil {
				return fmt.Errorf("failed to update post: %w", err)
			}
		}
		return setPostMeta(ctx, tx, id, p)
	})
	return id, err
}

func insertPost(ctx context.Context, tx *sql.Tx, p Post) (int64, error) {
	status := p.Status
	if status == "" {
		status = "publish"
	}
	var url any
	if p.URL != "" {
		url = p.URL
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO posts (title, type, status, url, modified)
		VALUES (?, ?, ?, ?, ?)
	`, p.Title, p.Type, status, url, modifiedValue(p.Modified))
	if err != nil {
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get post ID: %w", err)
	}
	return id, nil
}

// setPostMeta writes the three SEO keys. Empty values are stored as empty
// strings so the record still reads back as "missing".
func setPostMeta(ctx context.Context, tx *sql.Tx, postID int64, p Post) error {
	meta := map[string]string{
		models.MetaKeyTitle:   p.MetaTitle,
		models.MetaKeyDesc:    p.MetaDesc,
		models.MetaKeyFocusKW: p.FocusKW,
	}
	for key, value := range meta {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO postmeta (post_id, meta_key, meta_value) VALUES (?, ?, ?)
			ON CONFLICT(post_id, meta_key) DO UPDATE SET meta_value = excluded.meta_value
		`, postID, key, value)
		if err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return nil
}

func modifiedValue(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}
