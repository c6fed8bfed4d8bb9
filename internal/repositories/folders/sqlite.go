// Package folders persists the folders notes can be filed into.
package folders

import (
	"context"
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

// List returns folders in display order.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.Folder, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, idx FROM folders ORDER BY idx, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", dbx.Classify(err))
	}
	defer rows.Close()

	var result []models.Folder
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.Idx); err != nil {
			return nil, fmt.Errorf("failed to scan folder row: %w", dbx.Classify(err))
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate folder rows: %w", dbx.Classify(err))
	}
	return result, nil
}

// Create inserts a folder. Duplicate ids or names are constraint violations.
func (r *SQLiteRepository) Create(ctx context.Context, f *models.Folder) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO folders (id, name, idx) VALUES (?, ?, ?)`, f.ID, f.Name, f.Idx)
	if err != nil {
		return fmt.Errorf("failed to create folder[%s]: %w", f.ID, dbx.Classify(err))
	}
	return nil
}

// Delete removes a folder. It fails with a constraint violation while notes
// still reference it; deleting a missing folder is a no-op.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete folder[%s]: %w", id, dbx.Classify(err))
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM folders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count folders: %w", dbx.Classify(err))
	}
	return n, nil
}
