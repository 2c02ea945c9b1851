// Package store keeps artist metric snapshots in a SQLite database so a
// ranking can be run against a previously imported dataset.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const createTablesQuery = `
CREATE TABLE IF NOT EXISTS Artist (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  genre TEXT NOT NULL DEFAULT '',
  ordinal INTEGER NOT NULL,
  imported_at DATETIME
);

CREATE TABLE IF NOT EXISTS WeeklyMetric (
  artist TEXT,
  ordinal INTEGER,
  week TEXT NOT NULL,
  streams INTEGER NOT NULL,
  playlist_adds INTEGER NOT NULL,
  listeners INTEGER NOT NULL,
  FOREIGN KEY (artist) REFERENCES Artist(id),
  PRIMARY KEY (artist, ordinal)
);
`

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	exists, err := dbExists(db)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if _, err := db.Exec(createTablesQuery); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

func dbExists(db *sql.DB) (bool, error) {
	// 'Artist' table stands in for the whole schema
	row := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'Artist'")
	var name string
	err := row.Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking db existence: %w", err)
	}
	return true, nil
}
