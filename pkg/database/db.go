package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// Open returns a sqlite handle with foreign key enforcement enabled so
// that deleting a user or catalog item cascades into list_entries.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// single connection: one writer keeps sqlite simple
	db.SetMaxOpenConns(1)
	return db, nil
}
