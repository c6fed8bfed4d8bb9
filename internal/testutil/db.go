// Package testutil provides fixtures shared by the repository, storage and
// editor tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/simplenotes/internal/migrations"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// NewDB returns an isolated, migrated in-memory database with foreign keys on.
// It is closed when the test ends.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	// every pooled connection would get its own in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db))
	return db
}

// Count returns the number of rows matched by a SELECT COUNT(*) query.
func Count(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}
