package backup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/simplenotes/internal/logging"
	"github.com/dmitrijs2005/simplenotes/internal/models"
	"github.com/dmitrijs2005/simplenotes/internal/repositories/folders"
	"github.com/dmitrijs2005/simplenotes/internal/repositories/notes"
	"github.com/dmitrijs2005/simplenotes/internal/repositories/tags"
	"github.com/dmitrijs2005/simplenotes/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontMatter_RoundTrip(t *testing.T) {
	idx := 4
	tests := []struct {
		name string
		in   document
	}{
		{
			name: "all fields",
			in: document{
				Note: models.Note{
					ID:        "42",
					Title:     "Groceries: weekly",
					Content:   "milk\n---\neggs\n",
					FolderID:  models.StringPtr("f1"),
					ColorHex:  models.StringPtr("#fc0"),
					IsPinned:  true,
					IsDeleted: true,
					CreatedAt: 1000,
					UpdatedAt: 2000,
				},
				Tags:   []string{"home", "shopping"},
				Folder: &folderRef{ID: "f1", Name: "Recipes", Idx: &idx},
			},
		},
		{
			name: "crlf content kept",
			in: document{Note: models.Note{
				ID: "w", Title: "win", Content: "line1\r\nline2\r\n", CreatedAt: 1, UpdatedAt: 1,
			}},
		},
		{
			name: "leading blank lines kept",
			in: document{Note: models.Note{
				ID: "b", Content: "\r\n\nbody", CreatedAt: 1, UpdatedAt: 1,
			}},
		},
		{
			name: "empty content",
			in:   document{Note: models.Note{ID: "e", CreatedAt: 1, UpdatedAt: 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := encode(tt.in)
			require.NoError(t, err)

			out, err := decode(data)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.in, out))
		})
	}
}

func TestDecode_CRLFFrontMatter(t *testing.T) {
	text := "---\r\nid: x\r\ntitle: t\r\ncreated_at: 1\r\nupdated_at: 2\r\n---\r\n\r\nbody\r\n"
	d, err := decode([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, "x", d.Note.ID)
	assert.Equal(t, "t", d.Note.Title)
	assert.Equal(t, "body\r\n", d.Note.Content)
}

func TestDecode_Invalid(t *testing.T) {
	cases := map[string]string{
		"no opening": "id: x\n---\n\nbody",
		"no closing": "---\nid: x\nbody",
		"no id":      "---\ntitle: t\n---\n\nbody",
		"bad yaml":   "---\nid: [\n---\n\nbody",
		"bad color":  "---\nid: x\ncolor: orange\n---\n\nbody",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := decode([]byte(text))
			assert.Error(t, err)
		})
	}
}

func TestExportImport_RoundTripIntoFreshStore(t *testing.T) {
	ctx := context.Background()
	src := testutil.NewDB(t)
	_, err := src.Exec(`INSERT INTO folders(id, name, idx) VALUES ('work', 'Work', 0)`)
	require.NoError(t, err)

	srcNotes := notes.NewSQLiteRepository(src)
	srcTags := tags.NewSQLiteRepository(src)
	require.NoError(t, srcNotes.CreateNote(ctx, &models.Note{
		ID: "a", Title: "A", Content: "alpha", FolderID: models.StringPtr("work"),
		IsPinned: true, CreatedAt: 100, UpdatedAt: 300,
	}))
	require.NoError(t, srcNotes.CreateNote(ctx, &models.Note{ID: "b", Title: "B", CreatedAt: 50, UpdatedAt: 60}))
	require.NoError(t, srcNotes.DeleteNote(ctx, "b", false))
	require.NoError(t, srcTags.Create(ctx, &models.Tag{ID: "t1", Name: "home"}))
	require.NoError(t, srcTags.Attach(ctx, "a", "t1"))

	dir := t.TempDir()
	n, err := NewService(src, logging.Discard()).Export(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.FileExists(t, filepath.Join(dir, "a.md"))

	dst := testutil.NewDB(t)
	res, err := NewService(dst, logging.Discard()).Import(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Empty(t, res.Skipped)

	want, err := srcNotes.ListAll(ctx)
	require.NoError(t, err)
	got, err := notes.NewSQLiteRepository(dst).ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(want, got))

	ts, err := tags.NewSQLiteRepository(dst).ListForNote(ctx, "a")
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, "home", ts[0].Name)
}

func TestImport_UpdatesExistingKeepingUpdatedAt(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := notes.NewSQLiteRepository(db)
	require.NoError(t, repo.CreateNote(ctx, &models.Note{ID: "a", Title: "old", CreatedAt: 1, UpdatedAt: 9000}))

	dir := t.TempDir()
	data, err := encode(document{Note: models.Note{ID: "a", Title: "new", Content: "c", CreatedAt: 1, UpdatedAt: 500}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), data, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.md"), []byte("nope"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignored"), 0o600))

	res, err := NewService(db, logging.Discard()).Import(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, []string{"broken.md"}, res.Skipped)

	got, err := repo.GetNote(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, int64(500), got.UpdatedAt)
}

func TestImport_CreatesMissingFolder(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)

	dir := t.TempDir()
	data, err := encode(document{Note: models.Note{ID: "a", FolderID: models.StringPtr("travel"), CreatedAt: 1, UpdatedAt: 1}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), data, 0o600))

	_, err = NewService(db, logging.Discard()).Import(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, testutil.Count(t, db, `SELECT COUNT(*) FROM folders WHERE id = 'travel'`))
}

func TestImport_MissingDir(t *testing.T) {
	_, err := NewService(testutil.NewDB(t), logging.Discard()).Import(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "42.md", fileName("42"))
	assert.Equal(t, "..%2Fetc%2Fpasswd.md", fileName("../etc/passwd"))
	assert.Equal(t, "%41bc.md", fileName("Abc"))

	ids := []string{"a/b", "a_b", "a%2Fb", "A_b", "a\\b"}
	seen := map[string]string{}
	for _, id := range ids {
		name := strings.ToLower(fileName(id))
		prev, dup := seen[name]
		assert.False(t, dup, "%q and %q share %s", prev, id, name)
		seen[name] = id
	}
}

func TestExportImport_DistinctIDsNeverShareAFile(t *testing.T) {
	ctx := context.Background()
	src := testutil.NewDB(t)
	repo := notes.NewSQLiteRepository(src)
	require.NoError(t, repo.CreateNote(ctx, &models.Note{ID: "a/b", Title: "slash", CreatedAt: 1, UpdatedAt: 1}))
	require.NoError(t, repo.CreateNote(ctx, &models.Note{ID: "a_b", Title: "underscore", CreatedAt: 2, UpdatedAt: 2}))

	dir := t.TempDir()
	n, err := NewService(src, logging.Discard()).Export(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	dst := testutil.NewDB(t)
	res, err := NewService(dst, logging.Discard()).Import(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 2, testutil.Count(t, dst, `SELECT COUNT(*) FROM notes`))
}

func TestExportImport_CustomFolderKeepsNameAndPosition(t *testing.T) {
	ctx := context.Background()
	src := testutil.NewDB(t)
	_, err := src.Exec(`INSERT INTO folders(id, name, idx) VALUES ('f1', 'Recipes', 7)`)
	require.NoError(t, err)
	require.NoError(t, notes.NewSQLiteRepository(src).CreateNote(ctx, &models.Note{
		ID: "n", FolderID: models.StringPtr("f1"), Content: "line1\r\nline2", CreatedAt: 1, UpdatedAt: 1,
	}))

	dir := t.TempDir()
	_, err = NewService(src, logging.Discard()).Export(ctx, dir)
	require.NoError(t, err)

	dst := testutil.NewDB(t)
	_, err = NewService(dst, logging.Discard()).Import(ctx, dir)
	require.NoError(t, err)

	list, err := folders.NewSQLiteRepository(dst).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Folder{{ID: "f1", Name: "Recipes", Idx: 7}}, list)

	got, err := notes.NewSQLiteRepository(dst).GetNote(ctx, "n")
	require.NoError(t, err)
	assert.Equal(t, "line1\r\nline2", got.Content)
}

func TestImport_FolderNameClashDoesNotAbort(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	_, err := db.Exec(`INSERT INTO folders(id, name, idx) VALUES ('x', 'Recipes', 0), ('y', 'travel', 1)`)
	require.NoError(t, err)

	dir := t.TempDir()
	for _, d := range []document{
		{Note: models.Note{ID: "a", FolderID: models.StringPtr("f1"), CreatedAt: 1, UpdatedAt: 1}, Folder: &folderRef{ID: "f1", Name: "Recipes"}},
		{Note: models.Note{ID: "b", FolderID: models.StringPtr("travel"), CreatedAt: 1, UpdatedAt: 1}, Folder: &folderRef{ID: "travel"}},
	} {
		data, err := encode(d)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, fileName(d.Note.ID)), data, 0o600))
	}

	res, err := NewService(db, logging.Discard()).Import(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, testutil.Count(t, db, `SELECT COUNT(*) FROM folders WHERE id = 'f1' AND name = 'Recipes (f1)'`))
	assert.Equal(t, 1, testutil.Count(t, db, `SELECT COUNT(*) FROM folders WHERE id = 'travel' AND name = 'travel (travel)' AND idx = 3`))
}

func TestUniqueName(t *testing.T) {
	taken := map[string]bool{"Work": true, "Work (w)": true}
	assert.Equal(t, "Ideas", uniqueName("Ideas", "i", taken))
	assert.Equal(t, "Work (w 2)", uniqueName("Work", "w", taken))
}
