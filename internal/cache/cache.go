// Package cache persists decompilation results in SQLite so repeated
// tool calls against the same assembly don't re-run the decompiler.
//
// Entries are keyed by assembly identity (path, size, mtime), the
// decompiler version, and the invocation options — any change to the
// assembly or the toolchain produces a different key, so stale entries
// are never served and never need invalidating.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Cache is the SQLite-backed result store.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the cache database at path, creating parent
// directories as needed and running schema setup.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("cache: create data dir: %w", err)
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("cache: pragma %q: %w", p, err)
		}
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		return nil, fmt.Errorf("cache: migration: %w", err)
	}
	return c, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			key        TEXT PRIMARY KEY,
			assembly   TEXT NOT NULL,
			source     TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Key derives the cache key for one invocation. The assembly's size and
// mtime stand in for a content hash — hashing multi-megabyte assemblies
// on every tool call would cost more than the decompile it saves.
func Key(assemblyPath string, info os.FileInfo, decompilerVersion, options string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%d\x00%d\x00%s\x00%s",
		assemblyPath, info.Size(), info.ModTime().UnixNano(), decompilerVersion, options)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached source for key, if present.
func (c *Cache) Get(key string) (string, bool, error) {
	var source string
	err := c.db.QueryRow("SELECT source FROM results WHERE key = ?", key).Scan(&source)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache: get: %w", err)
	}
	return source, true, nil
}

// Put stores source under key, replacing any previous entry.
func (c *Cache) Put(key, assemblyPath, source string) error {
	_, err := c.db.Exec(`
		INSERT INTO results (key, assembly, source) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET source = excluded.source, created_at = datetime('now')`,
		key, assemblyPath, source)
	if err != nil {
		return fmt.Errorf("cache: put: %w", err)
	}
	return nil
}

// Purge removes every cached result.
func (c *Cache) Purge() error {
	if _, err := c.db.Exec("DELETE FROM results"); err != nil {
		return fmt.Errorf("cache: purge: %w", err)
	}
	return nil
}

// Len returns the number of cached results.
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM results").Scan(&n); err != nil {
		return 0, fmt.Errorf("cache: count: %w", err)
	}
	return n, nil
}
