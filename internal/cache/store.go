// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

// Package cache stores generated diagrams in a local SQLite database keyed by
// the content hash of the AST they were produced from, so repeated runs over
// unchanged sources skip extraction and rendering.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/dotandev/solseq/internal/errors"
	_ "modernc.org/sqlite"
)

// Entry describes one cached diagram.
type Entry struct {
	ID         int64     `json:"id"`
	ASTHash    string    `json:"ast_hash"`
	Palette    string    `json:"palette"`
	SourcePath string    `json:"source_path"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store handles diagram cache operations.
type Store struct {
	db *sql.DB
}

// Open initializes the cache database at dir/diagrams.db, creating the
// directory and schema as needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.WrapCacheFailed("failed to create cache directory", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "diagrams.db"))
	if err != nil {
		return nil, errors.WrapCacheFailed("failed to open cache database", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS diagrams (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ast_hash TEXT NOT NULL,
		palette TEXT NOT NULL,
		source_path TEXT,
		diagram TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(ast_hash, palette)
	);
	CREATE INDEX IF NOT EXISTS idx_diagrams_hash ON diagrams(ast_hash);
	`
	if _, err := db.Exec(query); err != nil {
		return errors.WrapCacheFailed("failed to init schema", err)
	}
	return nil
}

// HashAST returns the cache key for a raw AST document.
func HashAST(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func paletteKey(lightColors bool) string {
	if lightColors {
		return "light"
	}
	return "default"
}

// Get looks up a cached diagram for (hash, palette).
func (s *Store) Get(astHash string, lightColors bool) (string, bool, error) {
	var diagram string
	err := s.db.QueryRow(
		"SELECT diagram FROM diagrams WHERE ast_hash = ? AND palette = ?",
		astHash, paletteKey(lightColors),
	).Scan(&diagram)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.WrapCacheFailed("lookup failed", err)
	}
	return diagram, true, nil
}

// Put stores a diagram, replacing any previous entry for the same key.
func (s *Store) Put(astHash string, lightColors bool, sourcePath, diagram string) error {
	_, err := s.db.Exec(
		`INSERT INTO diagrams (ast_hash, palette, source_path, diagram, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(ast_hash, palette) DO UPDATE SET
		   source_path = excluded.source_path,
		   diagram = excluded.diagram,
		   created_at = excluded.created_at`,
		astHash, paletteKey(lightColors), sourcePath, diagram, time.Now(),
	)
	if err != nil {
		return errors.WrapCacheFailed("insert failed", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (s *Store) List(limit int) ([]Entry, error) {
	query := `SELECT id, ast_hash, palette, source_path, length(diagram), created_at
	          FROM diagrams ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.WrapCacheFailed("list failed", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ASTHash, &e.Palette, &e.SourcePath, &e.Size, &e.CreatedAt); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats returns the entry count and total diagram bytes.
func (s *Store) Stats() (count int64, bytes int64, err error) {
	err = s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(length(diagram)), 0) FROM diagrams",
	).Scan(&count, &bytes)
	if err != nil {
		return 0, 0, errors.WrapCacheFailed("stats failed", err)
	}
	return count, bytes, nil
}

// Clear removes all cached diagrams.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec("DELETE FROM diagrams")
	if err != nil {
		return 0, errors.WrapCacheFailed("clear failed", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
