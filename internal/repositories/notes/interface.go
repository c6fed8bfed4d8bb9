package notes

import (
	"context"

	"github.com/dmitrijs2005/simplenotes/internal/models"
)

// Repository describes the note lifecycle operations used by the editor
// session, the listing commands and backup.
type Repository interface {
	// GetNote returns the note regardless of its deleted flag, or (nil, nil)
	// when no row matches.
	GetNote(ctx context.Context, id string) (*models.Note, error)

	// CreateNote inserts a full row.
	CreateNote(ctx context.Context, note *models.Note) error

	// UpdateNote writes only the fields present in u. An empty update is a no-op.
	UpdateNote(ctx context.Context, id string, u models.NoteUpdate) error

	// DeleteNote soft-deletes, or removes the row when permanent is true.
	// Missing or already deleted notes are not an error.
	DeleteNote(ctx context.Context, id string, permanent bool) error

	// RestoreNote clears the deleted flag.
	RestoreNote(ctx context.Context, id string) error

	// ListNotes returns live notes, pinned first, then most recently updated.
	ListNotes(ctx context.Context, f models.ListFilter) ([]models.Note, error)

	// ListDeleted returns soft-deleted notes, most recently deleted first.
	ListDeleted(ctx context.Context) ([]models.Note, error)

	// ListAll returns every row, deleted ones included.
	ListAll(ctx context.Context) ([]models.Note, error)
}
