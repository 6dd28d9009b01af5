package main

import (
	"database/sql"
	"fmt"
)

// initDB opens the statistics database with whichever SQLite driver the
// binary was built with and makes sure the schema exists.
func initDB(dataSource string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriver, dataSource)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer at a time.
	db.SetMaxOpenConns(1)

	if err = setupStatsSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to setup stats schema: %w", err)
	}
	return db, nil
}
