package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logirate/backend/migrations"
	"github.com/logirate/backend/testutil"
)

// TestMigrations drives the embedded migrations up and back down against a
// real Postgres, checking that every table appears and disappears. Skipped
// when TEST_DATABASE_URL is unset.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()
	tables := []string{"users", "vendors", "routes", "reviews"}

	// The repo package's TestMain may already have migrated this shared DB.
	// Reset first so the test passes regardless of run order.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "reset to version 0")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results)
	for _, table := range tables {
		assert.True(t, tableExists(t, db, table), "table %q should exist after up", table)
	}

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down")
	for _, table := range tables {
		assert.False(t, tableExists(t, db, table), "table %q should be gone after down", table)
	}
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`
	var exists bool
	err := db.QueryRowContext(context.Background(), q, table).Scan(&exists)
	require.NoError(t, err, "query information_schema for %q", table)
	return exists
}
