// Package rendercache persists per-document input fingerprints between runs
// so incremental builds can skip documents whose input and configuration are
// unchanged.
package rendercache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Cache is a SQLite-backed fingerprint store. Safe for concurrent use by
// render workers.
type Cache struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens or creates the cache database. Use ":memory:" in tests.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open render cache: %w", err)
	}
	c := &Cache{db: db}
	if err := c.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize render cache schema: %w", err)
	}
	return c, nil
}

func (c *Cache) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS fingerprints (
		document_id TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		rendered_at INTEGER NOT NULL
	);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Fingerprint derives the cache key for one document: the input bytes plus
// the configuration hash, so config changes invalidate everything.
func Fingerprint(input []byte, configHash string) string {
	h := sha256.New()
	h.Write(input)
	h.Write([]byte(configHash))
	return hex.EncodeToString(h.Sum(nil))
}

// Unchanged reports whether the stored fingerprint for documentID matches.
func (c *Cache) Unchanged(documentID, fingerprint string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	var stored string
	err := c.db.QueryRow(
		"SELECT fingerprint FROM fingerprints WHERE document_id = ?", documentID,
	).Scan(&stored)
	if err != nil {
		return false
	}
	return stored == fingerprint
}

// Store upserts the fingerprint for documentID.
func (c *Cache) Store(documentID, fingerprint string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.db.Exec(
		`INSERT INTO fingerprints (document_id, fingerprint, rendered_at) VALUES (?, ?, ?)
		 ON CONFLICT(document_id) DO UPDATE SET fingerprint = excluded.fingerprint, rendered_at = excluded.rendered_at`,
		documentID, fingerprint, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("store fingerprint: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
