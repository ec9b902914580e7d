package testutil

import (
	"database/sql"
	"testing"

	"github.com/mindmapdigital/projectflow/internal/db"
)

// NewTestDB opens a migrated in-memory SQLite database, closed via t.Cleanup.
// Each call gets a private database, so tests never share state.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW wraps the test database in a real UnitOfWork.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
