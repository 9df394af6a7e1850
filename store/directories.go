package store

import (
	"database/sql"
	"fmt"
	"time"
)

const lastIndexedKey = "index.last_run"

// ReplaceDirectories swaps the cached candidate list for dirs, keeping order,
// and records when it happened.
func ReplaceDirectories(db *sql.DB, dirs []string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin directory cache update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM directories`); err != nil {
		return fmt.Errorf("failed to clear directory cache: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO directories (position, path) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare directory insert: %w", err)
	}
	defer stmt.Close()

	for i, dir := range dirs {
		if _, err := stmt.Exec(i, dir); err != nil {
			return fmt.Errorf("failed to cache directory %q: %w", dir, err)
		}
	}

	if err := setSetting(tx, lastIndexedKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit directory cache: %w", err)
	}
	return nil
}

// GetDirectories returns the cached candidate directories in scan order.
func GetDirectories(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT path FROM directories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to get directories: %w", err)
	}
	defer rows.Close()

	var dirs []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		dirs = append(dirs, path)
	}
	return dirs, rows.Err()
}

// LastIndexed reports when the directory cache was last rebuilt. The zero
// time means never.
func LastIndexed(db *sql.DB) (time.Time, error) {
	v, err := getSetting(db, lastIndexedKey)
	if err != nil || v == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", lastIndexedKey, err)
	}
	return t, nil
}
