package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Content types an operator can audit
CREATE TABLE IF NOT EXISTS post_types (
    name TEXT PRIMARY KEY,
    label TEXT NOT NULL,
    public BOOLEAN NOT NULL DEFAULT 1
);

INSERT OR IGNORE INTO post_types (name, label, public) VALUES
    ('post', 'Posts', 1),
    ('page', 'Pages', 1),
    ('attachment', 'Media', 1);

-- Content records
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL DEFAULT '',
    type TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'publish', -- publish, draft, pending, private, trash
    url TEXT,
    modified TEXT NOT NULL                  -- RFC 3339, UTC
);

CREATE INDEX IF NOT EXISTS idx_posts_type_status ON posts(type, status);
CREATE UNIQUE INDEX IF NOT EXISTS idx_posts_url ON posts(url) WHERE url IS NOT NULL;

-- Per-record metadata written by the SEO plugin
CREATE TABLE IF NOT EXISTS postmeta (
    meta_id INTEGER PRIMARY KEY AUTOINCREMENT,
    post_id INTEGER NOT NULL,
    meta_key TEXT NOT NULL,
    meta_value TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (post_id) REFERENCES posts(id) ON DELETE CASCADE,
    UNIQUE(post_id, meta_key)
);

CREATE INDEX IF NOT EXISTS idx_postmeta_key ON postmeta(meta_key);

-- Named settings
CREATE TABLE IF NOT EXISTS options (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Installed plugins
CREATE TABLE IF NOT EXISTS plugins (
    file TEXT PRIMARY KEY,
    slug TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    version TEXT NOT NULL DEFAULT '',
    active BOOLEAN NOT NULL DEFAULT 0,
    installed_at TEXT NOT NULL
);

-- Installer tokens already spent
CREATE TABLE IF NOT EXISTS used_tokens (
    jti TEXT PRIMARY KEY,
    expires_at TEXT NOT NULL,
    used_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`
