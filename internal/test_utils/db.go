package test_utils

import (
	"database/sql"
	"testing"

	"github.com/budgetgarden/budgetgarden/internal/database"
)

// SetupTestDB creates a new in-memory SQLite database with all migrations applied.
// Each database is completely isolated from others.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.OpenSqlite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
