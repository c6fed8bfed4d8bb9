package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/simplenotes/internal/common"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestClassify_Nil(t *testing.T) {
	require.NoError(t, Classify(nil))
}

func TestClassify_PrimaryKeyIsConstraintViolation(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO t(id, v) VALUES (1, 'a')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO t(id, v) VALUES (1, 'b')`)
	require.Error(t, err)

	got := Classify(err)
	require.ErrorIs(t, got, common.ErrConstraintViolation)
	require.NotErrorIs(t, got, common.ErrStoreUnavailable)
}

func TestClassify_ForeignKeyIsConstraintViolation(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON;
CREATE TABLE parent (id TEXT PRIMARY KEY);
CREATE TABLE child (id TEXT PRIMARY KEY, parent_id TEXT REFERENCES parent(id));`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO child(id, parent_id) VALUES ('c', 'missing')`)
	require.Error(t, err)
	require.ErrorIs(t, Classify(err), common.ErrConstraintViolation)
}

func TestClassify_ClosedDBIsUnavailable(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	_, err := db.ExecContext(context.Background(), `INSERT INTO t(v) VALUES ('x')`)
	require.Error(t, err)
	require.ErrorIs(t, Classify(err), common.ErrStoreUnavailable)
}

func TestClassify_KeepsClassifiedErrors(t *testing.T) {
	err := Classify(common.ErrNotFound)
	require.True(t, errors.Is(err, common.ErrNotFound))
	require.False(t, errors.Is(err, common.ErrStoreUnavailable))
}
