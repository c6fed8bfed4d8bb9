package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/simplenotes/internal/common"
	"github.com/dmitrijs2005/simplenotes/internal/dbx"
	"github.com/dmitrijs2005/simplenotes/internal/models"
)

const noteColumns = `id, title, content, folder_id, color_hex, is_pinned, is_archived, is_locked, is_deleted, created_at, updated_at`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

// Option configures a SQLiteRepository.
type Option func(*SQLiteRepository)

// WithClock overrides the time source used for automatic updated_at values.
func WithClock(now func() time.Time) Option {
	return func(r *SQLiteRepository) { r.now = now }
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX, opts ...Option) *SQLiteRepository {
	r := &SQLiteRepository{db: db, now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (*models.Note, error) {
	var (
		n        models.Note
		folderID sql.NullString
		color    sql.NullString
	)
	err := s.Scan(&n.ID, &n.Title, &n.Content, &folderID, &color,
		&n.IsPinned, &n.IsArchived, &n.IsLocked, &n.IsDeleted, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if folderID.Valid {
		n.FolderID = &folderID.String
	}
	if color.Valid {
		n.ColorHex = &color.String
	}
	return &n, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// GetNote fetches a note by primary key regardless of its deleted flag.
func (r *SQLiteRepository) GetNote(ctx context.Context, id string) (*models.Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note[%s]: %w", id, dbx.Classify(err))
	}
	return n, nil
}

// CreateNote inserts a full row. updated_at is never stored below created_at.
func (r *SQLiteRepository) CreateNote(ctx context.Context, n *models.Note) error {
	updatedAt := max(n.UpdatedAt, n.CreatedAt)
	_, err := r.db.ExecContext(ctx, `INSERT INTO notes (`+noteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Content, nullable(n.FolderID), nullable(n.ColorHex),
		boolInt(n.IsPinned), boolInt(n.IsArchived), boolInt(n.IsLocked), boolInt(n.IsDeleted),
		n.CreatedAt, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert note[%s]: %w", n.ID, dbx.Classify(err))
	}
	n.UpdatedAt = updatedAt
	return nil
}

// UpdateNote writes the present fields of u. Without an explicit UpdatedAt
// the stored value becomes max(now, previous+1), so it always moves forward.
func (r *SQLiteRepository) UpdateNote(ctx context.Context, id string, u models.NoteUpdate) error {
	if u.IsEmpty() {
		return nil
	}

	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if v, ok := u.Title.Get(); ok {
		add("title", v)
	}
	if v, ok := u.Content.Get(); ok {
		add("content", v)
	}
	if v, ok := u.FolderID.Get(); ok {
		add("folder_id", nullable(v))
	}
	if v, ok := u.ColorHex.Get(); ok {
		add("color_hex", nullable(v))
	}
	if v, ok := u.IsPinned.Get(); ok {
		add("is_pinned", boolInt(v))
	}
	if v, ok := u.IsArchived.Get(); ok {
		add("is_archived", boolInt(v))
	}
	if v, ok := u.IsLocked.Get(); ok {
		add("is_locked", boolInt(v))
	}
	if v, ok := u.IsDeleted.Get(); ok {
		add("is_deleted", boolInt(v))
	}
	if v, ok := u.UpdatedAt.Get(); ok {
		add("updated_at", v)
	} else {
		sets = append(sets, "updated_at = MAX(?, updated_at + 1)")
		args = append(args, models.NowMillis(r.now()))
	}
	args = append(args, id)

	query := `UPDATE notes SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update note[%s]: %w", id, dbx.Classify(err))
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", dbx.Classify(err))
	}
	if ra == 0 {
		return fmt.Errorf("update note[%s]: %w", id, common.ErrNotFound)
	}
	return nil
}

// DeleteNote soft-deletes a live note, or removes the row and its tag
// associations when permanent is true. Both modes are idempotent.
func (r *SQLiteRepository) DeleteNote(ctx context.Context, id string, permanent bool) error {
	if !permanent {
		_, err := r.db.ExecContext(ctx,
			`UPDATE notes SET is_deleted = 1, updated_at = MAX(?, updated_at + 1) WHERE id = ? AND is_deleted = 0`,
			models.NowMillis(r.now()), id)
		if err != nil {
			return fmt.Errorf("failed to delete note[%s]: %w", id, dbx.Classify(err))
		}
		return nil
	}

	err := r.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to purge note[%s]: %w", id, dbx.Classify(err))
	}
	return nil
}

// RestoreNote brings a soft-deleted note back into listings.
func (r *SQLiteRepository) RestoreNote(ctx context.Context, id string) error {
	return r.UpdateNote(ctx, id, models.NoteUpdate{IsDeleted: models.Some(false)})
}

// ListNotes returns live notes matching f. Pinned notes always come before
// unpinned ones; within each group the most recently updated comes first.
func (r *SQLiteRepository) ListNotes(ctx context.Context, f models.ListFilter) ([]models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE is_deleted = 0`
	var args []any

	if f.Query != "" {
		pattern := "%" + escapeLike(f.Query) + "%"
		query += ` AND (title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern)
	}
	if f.PinnedOnly {
		query += ` AND is_pinned = 1`
	}
	if f.FolderID != "" {
		query += ` AND folder_id = ?`
		args = append(args, f.FolderID)
	}
	query += ` ORDER BY is_pinned DESC, updated_at DESC, id`

	return r.query(ctx, "failed to list notes", query, args...)
}

// ListDeleted returns the trash, most recently deleted first.
func (r *SQLiteRepository) ListDeleted(ctx context.Context) ([]models.Note, error) {
	return r.query(ctx, "failed to list deleted notes",
		`SELECT `+noteColumns+` FROM notes WHERE is_deleted = 1 ORDER BY updated_at DESC, id`)
}

// ListAll returns every stored note in creation order.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]models.Note, error) {
	return r.query(ctx, "failed to list all notes",
		`SELECT `+noteColumns+` FROM notes ORDER BY created_at, id`)
}

func (r *SQLiteRepository) query(ctx context.Context, what, query string, args ...any) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, dbx.Classify(err))
	}
	defer rows.Close()

	result := make([]models.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", what, dbx.Classify(err))
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", what, dbx.Classify(err))
	}
	return result, nil
}

func (r *SQLiteRepository) withTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if db, ok := r.db.(*sql.DB); ok {
		return dbx.WithTx(ctx, db, nil, fn)
	}
	// already inside the caller's transaction
	return fn(ctx, r.db)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
