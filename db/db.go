package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS pump_events (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	ts      TEXT NOT NULL,
	pump_on INTEGER NOT NULL,
	reason  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS readings (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	ts            TEXT NOT NULL,
	humidity      REAL NOT NULL,
	temperature_c REAL NOT NULL
);
`

// Open opens the history database and creates the schema if needed. The
// history is an observer of the control loop, never an input to it.
func Open(path string) (*sql.DB, error) {
	dbConn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := dbConn.Exec(schema); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return dbConn, nil
}
