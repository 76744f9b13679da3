// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package draft persists in-progress composer content so a half-written
// message with its tokens survives app restarts.
package draft

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/morganforge/pillbox/internal/token"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrNotFound is returned when no draft exists for a key.
var ErrNotFound = errors.New("draft not found")

// =============================================================================
// TYPES
// =============================================================================

// Draft is one persisted composer state. Key identifies the surface it
// belongs to (conversation id, window id); Text is the logical value with
// tag-strings inline, and Tokens the structured entries the tags refer to.
type Draft struct {
	Key       string
	Text      string
	Tokens    []token.Token
	UpdatedAt time.Time
}

// Store persists drafts in a SQLite database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS drafts (
	key        TEXT PRIMARY KEY,
	text       TEXT NOT NULL,
	tokens     TEXT NOT NULL DEFAULT '[]',
	updated_at INTEGER NOT NULL
);
`

// =============================================================================
// STORE LIFECYCLE
// =============================================================================

// Open opens (creating if needed) the draft database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Save upserts the draft for a key. An empty draft (no text, no tokens) is
// deleted instead so abandoned composers don't pile up.
func (s *Store) Save(d Draft) error {
	if d.Key == "" {
		return errors.New("draft key cannot be empty")
	}

	if d.Text == "" && len(d.Tokens) == 0 {
		return s.Delete(d.Key)
	}

	tokens, err := json.Marshal(d.Tokens)
	if err != nil {
		return fmt.Errorf("failed to encode tokens: %w", err)
	}

	updated := d.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	_, err = s.db.Exec(
		`INSERT INTO drafts (key, text, tokens, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET text = excluded.text,
		     tokens = excluded.tokens, updated_at = excluded.updated_at`,
		d.Key, d.Text, string(tokens), updated.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Load returns the draft for a key, or ErrNotFound.
func (s *Store) Load(key string) (Draft, error) {
	var (
		d       Draft
		tokens  string
		updated int64
	)

	row := s.db.QueryRow(`SELECT text, tokens, updated_at FROM drafts WHERE key = ?`, key)
	if err := row.Scan(&d.Text, &tokens, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Draft{}, ErrNotFound
		}
		return Draft{}, fmt.Errorf("failed to load draft: %w", err)
	}

	if err := json.Unmarshal([]byte(tokens), &d.Tokens); err != nil {
		return Draft{}, fmt.Errorf("failed to decode tokens: %w", err)
	}

	d.Key = key
	d.UpdatedAt = time.Unix(updated, 0)
	return d, nil
}

// Delete removes the draft for a key. Deleting a missing key is not an
// error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM drafts WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// Keys returns all draft keys, most recently updated first.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM drafts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Prune deletes drafts older than the cutoff. Returns how many were
// removed.
func (s *Store) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).Unix()
	res, err := s.db.Exec(`DELETE FROM drafts WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune drafts: %w", err)
	}
	return res.RowsAffected()
}
