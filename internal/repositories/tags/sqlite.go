// Package tags persists tags and the note_tags association table. Deleting a
// tag or a note cascades to its associations.
package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/simplenotes/internal/dbx"
	"github.com/dmitrijs2005/simplenotes/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, t *models.Tag) error {
	var color any
	if t.ColorHex != nil {
		color = *t.ColorHex
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO tags (id, name, color_hex) VALUES (?, ?, ?)`, t.ID, t.Name, color)
	if err != nil {
		return fmt.Errorf("failed to create tag[%s]: %w", t.Name, dbx.Classify(err))
	}
	return nil
}

// GetByName returns (nil, nil) when no tag has that name.
func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, color_hex FROM tags WHERE name = ?`, name)
	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag[%s]: %w", name, dbx.Classify(err))
	}
	return t, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Tag, error) {
	return r.query(ctx, "failed to list tags", `SELECT id, name, color_hex FROM tags ORDER BY name`)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete tag[%s]: %w", id, dbx.Classify(err))
	}
	return nil
}

// Attach links a note and a tag. Attaching twice is a no-op; unknown ids are
// constraint violations.
func (r *SQLiteRepository) Attach(ctx context.Context, noteID, tagID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO note_tags (note_id, tag_id) VALUES (?, ?) ON CONFLICT(note_id, tag_id) DO NOTHING`,
		noteID, tagID)
	if err != nil {
		return fmt.Errorf("failed to attach tag[%s] to note[%s]: %w", tagID, noteID, dbx.Classify(err))
	}
	return nil
}

func (r *SQLiteRepository) Detach(ctx context.Context, noteID, tagID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = ? AND tag_id = ?`, noteID, tagID)
	if err != nil {
		return fmt.Errorf("failed to detach tag[%s] from note[%s]: %w", tagID, noteID, dbx.Classify(err))
	}
	return nil
}

func (r *SQLiteRepository) ListForNote(ctx context.Context, noteID string) ([]models.Tag, error) {
	return r.query(ctx, "failed to list note tags", `
		SELECT t.id, t.name, t.color_hex
		FROM tags t JOIN note_tags nt ON nt.tag_id = t.id
		WHERE nt.note_id = ?
		ORDER BY t.name`, noteID)
}

func (r *SQLiteRepository) ListNoteIDs(ctx context.Context, tagID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT note_id FROM note_tags WHERE tag_id = ? ORDER BY note_id`, tagID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tagged notes: %w", dbx.Classify(err))
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan note id: %w", dbx.Classify(err))
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tagged notes: %w", dbx.Classify(err))
	}
	return ids, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTag(s scanner) (*models.Tag, error) {
	var (
		t     models.Tag
		color sql.NullString
	)
	if err := s.Scan(&t.ID, &t.Name, &color); err != nil {
		return nil, err
	}
	if color.Valid {
		t.ColorHex = &color.String
	}
	return &t, nil
}

func (r *SQLiteRepository) query(ctx context.Context, what, query string, args ...any) ([]models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, dbx.Classify(err))
	}
	defer rows.Close()

	var result []models.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", what, dbx.Classify(err))
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", what, dbx.Classify(err))
	}
	return result, nil
}
