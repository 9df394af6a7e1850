package store

import (
	"database/sql"
	"fmt"
	"time"
)

// AddRoot registers a scan root. added is false when it was already present.
func AddRoot(db *sql.DB, path string) (added bool, err error) {
	res, err := db.Exec(`INSERT OR IGNORE INTO roots (path, added_at) VALUES (?, ?)`, path, time.Now().Unix())
	if err != nil {
		return false, fmt.Errorf("failed to add root: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// RemoveRoot unregisters a scan root. removed is false when it was unknown.
func RemoveRoot(db *sql.DB, path string) (removed bool, err error) {
	res, err := db.Exec(`DELETE FROM roots WHERE path = ?`, path)
	if err != nil {
		return false, fmt.Errorf("failed to remove root: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// GetRoots returns the scan roots in the order they were added.
func GetRoots(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT path FROM roots ORDER BY added_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to get roots: %w", err)
	}
	defer rows.Close()

	var roots []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		roots = append(roots, path)
	}
	return roots, rows.Err()
}
