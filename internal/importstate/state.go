// Package importstate records which CSV files have already been imported so
// the importer does not create duplicate scores on a re-run.
package importstate

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded import.
type Entry struct {
	Path       string
	Hash       string
	Rows       int
	ImportedAt time.Time
}

// Ledger tracks imported files in a SQLite database.
type Ledger struct {
	db *sql.DB
}

// Open opens (or creates) the ledger at dir/imports.db.
func Open(dir string) (*Ledger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "imports.db"))
	if err != nil {
		return nil, fmt.Errorf("opening import ledger: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS imported_files (
		path        TEXT NOT NULL,
		hash        TEXT NOT NULL,
		rows        INTEGER NOT NULL,
		imported_at TIMESTAMP NOT NULL,
		PRIMARY KEY (path, hash)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger table: %w", err)
	}

	return &Ledger{db: db}, nil
}

// IsImported reports whether this exact file content was imported from path.
func (l *Ledger) IsImported(path, hash string) (bool, error) {
	var count int
	err := l.db.QueryRow(
		`SELECT COUNT(*) FROM imported_files WHERE path = ? AND hash = ?`,
		path, hash,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking ledger: %w", err)
	}
	return count > 0, nil
}

// MarkImported records a successful import of rows scores.
func (l *Ledger) MarkImported(path, hash string, rows int) error {
	_, err := l.db.Exec(
		`INSERT OR REPLACE INTO imported_files (path, hash, rows, imported_at) VALUES (?, ?, ?, ?)`,
		path, hash, rows, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording import of %s: %w", path, err)
	}
	return nil
}

// List returns recorded imports, newest first.
func (l *Ledger) List() ([]Entry, error) {
	rows, err := l.db.Query(
		`SELECT path, hash, rows, imported_at FROM imported_files ORDER BY imported_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.Hash, &e.Rows, &e.ImportedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the ledger database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// HashFile computes the SHA-256 hash of a file.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
