package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all snapshot tables for testing.
// Schema is synchronized with the goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE project (
			id VARCHAR(64) NOT NULL PRIMARY KEY,
			alt_id VARCHAR(36),
			name VARCHAR(255) NOT NULL,
			raised_amount FLOAT NOT NULL,
			target_amount FLOAT NOT NULL,
			amount_released FLOAT,
			status VARCHAR(10) NOT NULL,
			current_phase INTEGER NOT NULL DEFAULT 0,
			roi FLOAT NOT NULL DEFAULT 0,
			duration_months INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE investment (
			id VARCHAR(64) NOT NULL PRIMARY KEY,
			project_id VARCHAR(64) NOT NULL,
			amount FLOAT NOT NULL,
			current_value FLOAT,
			date DATETIME NOT NULL
		);

		CREATE TABLE payout (
			id VARCHAR(64) NOT NULL PRIMARY KEY,
			investment_id VARCHAR(64) NOT NULL,
			amount FLOAT NOT NULL,
			due_date DATETIME,
			status VARCHAR(9) NOT NULL,
			FOREIGN KEY(investment_id) REFERENCES investment(id) ON DELETE CASCADE
		);

		CREATE TABLE withdrawal_request (
			id VARCHAR(64) NOT NULL PRIMARY KEY,
			project_ref VARCHAR(64) NOT NULL,
			amount FLOAT NOT NULL,
			status VARCHAR(8) NOT NULL,
			phase INTEGER NOT NULL DEFAULT 0,
			request_date DATETIME
		);

		-- Quoted because transaction is a reserved keyword
		CREATE TABLE "transaction" (
			id VARCHAR(64) NOT NULL PRIMARY KEY,
			type VARCHAR(20) NOT NULL,
			amount FLOAT,
			status VARCHAR(7) NOT NULL,
			date DATETIME,
			created_at DATETIME
		);

		CREATE TABLE snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			fetched_at DATETIME NOT NULL
		);

		CREATE INDEX ix_investment_project_id ON investment(project_id);
		CREATE INDEX ix_payout_investment_id ON payout(investment_id);
		CREATE INDEX ix_withdrawal_request_project_ref ON withdrawal_request(project_ref);
		CREATE INDEX ix_snapshot_fetched_at ON snapshot(fetched_at);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"payout",
		"investment",
		"withdrawal_request",
		"transaction",
		"project",
		"snapshot",
	}

	for _, table := range tables {
		query := `DELETE FROM "` + table + `"`
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := `SELECT COUNT(*) FROM "` + table + `"`
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
//
// Example usage:
//
//	testutil.AssertRowCount(t, db, "project", 2)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
