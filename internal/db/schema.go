package db

const createKVTable = `
CREATE TABLE IF NOT EXISTS kv_store (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const selectValue = `SELECT value FROM kv_store WHERE key = ?`

const upsertValue = `
INSERT OR REPLACE INTO kv_store (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
`

const deleteValue = `DELETE FROM kv_store WHERE key = ?`
