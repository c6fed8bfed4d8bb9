package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/simplenotes/internal/dbx"
	"github.com/dmitrijs2005/simplenotes/internal/migrations"
	"github.com/dmitrijs2005/simplenotes/internal/models"
	"github.com/dmitrijs2005/simplenotes/internal/repositories/folders"
	"github.com/dmitrijs2005/simplenotes/internal/repositories/notes"
	"github.com/dmitrijs2005/simplenotes/internal/repositories/tags"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// pragmas are applied by the driver to every new connection.
var pragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"journal_mode(WAL)",
}

// withPragmas appends the connection pragmas to dsn as _pragma parameters.
func withPragmas(dsn string) string {
	var b strings.Builder
	b.WriteString(dsn)
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	for _, p := range pragmas {
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(url.QueryEscape(p))
		sep = "&"
	}
	return b.String()
}

// Store owns the database handle and the repositories built on it.
type Store struct {
	db      *sql.DB
	Notes   *notes.SQLiteRepository
	Folders *folders.SQLiteRepository
	Tags    *tags.SQLiteRepository
}

// Open connects to the database at dsn (a file path or ":memory:"). Foreign
// keys, the busy timeout and WAL are switched on for every connection. The
// schema is not touched until Initialize.
func Open(ctx context.Context, dsn string, opts ...notes.Option) (*Store, error) {
	db, err := sql.Open(driverName, withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", dbx.Classify(err))
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", dbx.Classify(err))
	}

	return &Store{
		db:      db,
		Notes:   notes.NewSQLiteRepository(db, opts...),
		Folders: folders.NewSQLiteRepository(db),
		Tags:    tags.NewSQLiteRepository(db),
	}, nil
}

// InitDatabase opens and initializes the database in one step.
func InitDatabase(ctx context.Context, dsn string, opts ...notes.Option) (*Store, error) {
	s, err := Open(ctx, dsn, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Initialize(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Initialize migrates the schema and seeds the default folders when there
// are none. It is idempotent.
func (s *Store) Initialize(ctx context.Context) error {
	if err := migrations.Up(ctx, s.db); err != nil {
		return dbx.Classify(err)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return seedFolders(ctx, folders.NewSQLiteRepository(tx))
	})
}

func seedFolders(ctx context.Context, repo folders.Repository) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, f := range models.DefaultFolders {
		f := f
		if err := repo.Create(ctx, &f); err != nil {
			return fmt.Errorf("failed to seed folders: %w", err)
		}
	}
	return nil
}

// DB exposes the shared handle for components that need raw access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
