package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS travel_stories (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		story TEXT NOT NULL,
		image_url TEXT NOT NULL,
		-- epoch milliseconds
		visited_date INTEGER NOT NULL,
		is_favourite INTEGER NOT NULL DEFAULT 0,
		-- Store list fields as JSON text
		visited_location_json TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS future_trips (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		destination TEXT NOT NULL,
		-- epoch milliseconds
		start_date INTEGER NOT NULL,
		end_date INTEGER NOT NULL,
		description TEXT,
		budget REAL,
		accommodation TEXT,
		activities_json TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_stories_user ON travel_stories(user_id);
	CREATE INDEX IF NOT EXISTS idx_trips_user ON future_trips(user_id);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
