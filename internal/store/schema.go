package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS saved_views (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL UNIQUE,
    kind                 TEXT NOT NULL,
    search               TEXT NOT NULL DEFAULT '',
    status               TEXT NOT NULL DEFAULT '',
    priority             TEXT NOT NULL DEFAULT '',
    sort_key             TEXT NOT NULL DEFAULT '',
    created_at           TEXT NOT NULL,
    updated_at           TEXT NOT NULL,
    last_used_at         TEXT
);

CREATE INDEX IF NOT EXISTS idx_saved_views_kind ON saved_views(kind);
`
