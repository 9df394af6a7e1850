package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrMarkNotFound is returned when removing a mark that does not exist.
var ErrMarkNotFound = errors.New("mark not found")

// Mark is a named shortcut to a directory.
type Mark struct {
	Name string
	Path string
}

// SetMark points name at path, replacing any previous target.
func SetMark(db *sql.DB, name, path string) error {
	query := `
		INSERT INTO marks (name, path) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET path = excluded.path
	`
	if _, err := db.Exec(query, name, path); err != nil {
		return fmt.Errorf("failed to set mark %q: %w", name, err)
	}
	return nil
}

// GetMark resolves a mark name. ok is false when the mark does not exist.
func GetMark(db *sql.DB, name string) (path string, ok bool, err error) {
	err = db.QueryRow(`SELECT path FROM marks WHERE name = ?`, name).Scan(&path)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get mark %q: %w", name, err)
	}
	return path, true, nil
}

// RemoveMark deletes a mark.
func RemoveMark(db *sql.DB, name string) error {
	res, err := db.Exec(`DELETE FROM marks WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to remove mark %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrMarkNotFound, name)
	}
	return nil
}

// ListMarks returns all marks ordered by name.
func ListMarks(db *sql.DB) ([]Mark, error) {
	rows, err := db.Query(`SELECT name, path FROM marks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list marks: %w", err)
	}
	defer rows.Close()

	var marks []Mark
	for rows.Next() {
		var m Mark
		if err := rows.Scan(&m.Name, &m.Path); err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}
