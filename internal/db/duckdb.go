// Package db holds the analytics connection. Reports run DuckDB SQL
// directly over the session journal's JSONL files, so the connection
// is in-memory and needs only the JSON extension.
package db

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
)

var (
	analyticsDB   *sql.DB
	analyticsOnce sync.Once
	analyticsErr  error
)

// Analytics returns the process-wide DuckDB connection, opening it on
// first use. Callers must not close it.
func Analytics() (*sql.DB, error) {
	analyticsOnce.Do(func() {
		analyticsDB, analyticsErr = open()
	})
	return analyticsDB, analyticsErr
}

func open() (*sql.DB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	// DuckDB works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, stmt := range []string{"INSTALL json", "LOAD json"} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set up JSON extension: %w", err)
		}
	}
	return db, nil
}
