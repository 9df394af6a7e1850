package store

import (
	"database/sql"
	"fmt"

	"github.com/montrey/f/logger"
)

// LoadFrecency reads the whole frecency table. Usage history is best effort:
// a nil, corrupt or unreadable database yields an empty store, never an error.
func LoadFrecency(db *sql.DB) *Frecency {
	f := NewFrecency()
	if db == nil {
		return f
	}

	rows, err := db.Query(`SELECT path, score, last_used FROM frecency`)
	if err != nil {
		logger.WithComponent("store").Warn("frecency unreadable, starting empty", "error", err)
		return f
	}
	defer rows.Close()

	for rows.Next() {
		var path string
		var e Entry
		if err := rows.Scan(&path, &e.Score, &e.LastUsed); err != nil {
			logger.WithComponent("store").Warn("frecency row unreadable, starting empty", "error", err)
			return NewFrecency()
		}
		f.Set(path, e)
	}
	if err := rows.Err(); err != nil {
		logger.WithComponent("store").Warn("frecency unreadable, starting empty", "error", err)
		return NewFrecency()
	}
	return f
}

// SaveFrecency replaces the persisted snapshot with f in one transaction.
// There is no cross-process lock: two writers racing means the last one wins.
func SaveFrecency(db *sql.DB, f *Frecency) error {
	if db == nil {
		return fmt.Errorf("failed to save frecency: no database")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin frecency save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM frecency`); err != nil {
		return fmt.Errorf("failed to clear frecency: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO frecency (path, score, last_used) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare frecency insert: %w", err)
	}
	defer stmt.Close()

	for path, e := range f.entries {
		if _, err := stmt.Exec(path, e.Score, e.LastUsed); err != nil {
			return fmt.Errorf("failed to save frecency for %q: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit frecency: %w", err)
	}
	return nil
}

// Commit loads the store, applies fn and persists the result. If fn or the
// save fails the mutated value is dropped, so a change that could not be
// written is never observed.
func Commit(db *sql.DB, fn func(f *Frecency) error) (*Frecency, error) {
	f := LoadFrecency(db)
	if err := fn(f); err != nil {
		return nil, err
	}
	if err := SaveFrecency(db, f); err != nil {
		return nil, err
	}
	return f, nil
}
