package storage

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationRunner_CreatesSchema(t *testing.T) {
	db := openTestDB(t)

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='events'",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "events", name)
}

func TestMigrationRunner_RecordsVersions(t *testing.T) {
	db := openTestDB(t)

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestMigrationRunner_Idempotent(t *testing.T) {
	db := openTestDB(t)

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())
	require.NoError(t, runner.Run())

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count, "re-running must not re-apply migrations")
}

func TestMigrationRunner_IndexesExist(t *testing.T) {
	db := openTestDB(t)

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	rows, err := db.Query(
		"SELECT name FROM sqlite_master WHERE type='index' AND tbl_name='events'",
	)
	require.NoError(t, err)
	defer rows.Close()

	names := map[string]bool{}
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names[n] = true
	}
	assert.True(t, names["idx_events_ts"])
	assert.True(t, names["idx_events_source"])
}
