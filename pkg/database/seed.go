package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin inserts the bootstrap administrator account when no admin
// row exists yet. Existing admins are never touched.
func EnsureAdmin(db *sql.DB, email, password string) error {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = 'admin'`).Scan(&n); err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	_, err = db.Exec(`INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, 'admin')`,
		"Administrator", email, string(hash))
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// SeedItem is one catalog row from a seed file.
type SeedItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Status      string `json:"status"`
	UnitCount   int    `json:"unit_count"`
	ReleaseDate string `json:"release_date"`
}

func LoadItemsFromJSON(jsonPath string) ([]SeedItem, error) {
	b, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read seed json: %w", err)
	}

	var list []SeedItem
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("unmarshal seed json: %w", err)
	}
	return list, nil
}

// SeedCatalog inserts seed items that are not already present, keyed by
// title. Returns the number of rows actually inserted.
func SeedCatalog(db *sql.DB, items []SeedItem) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO catalog_items (title, description, kind, status, unit_count, release_date)
		SELECT ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM catalog_items WHERE title = ?);
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert item: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, it := range items {
		res, err := stmt.Exec(it.Title, it.Description, it.Kind, it.Status, it.UnitCount, it.ReleaseDate, it.Title)
		if err != nil {
			return 0, fmt.Errorf("insert item %q: %w", it.Title, err)
		}
		aff, _ := res.RowsAffected()
		if aff > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return inserted, nil
}
