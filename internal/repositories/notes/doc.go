// Package notes provides the persistence layer for notes.
//
// # Overview
//
// The package defines a Repository interface for the note lifecycle and a
// SQLite-backed implementation (SQLiteRepository) working over a dbx.DBTX
// (either *sql.DB or *sql.Tx).
//
// # Lifecycle
//
// Notes are created with a full row and then changed through partial updates
// (models.NoteUpdate): only present fields are written and updated_at is
// bumped automatically unless the caller supplies it. Ordinary deletion is a
// soft flag (is_deleted = 1) that RestoreNote reverses; the permanent path
// removes the row together with its note_tags associations.
//
// # Errors
//
// Driver errors are classified with dbx.Classify, so callers can match
// common.ErrConstraintViolation and common.ErrStoreUnavailable with errors.Is.
// UpdateNote and RestoreNote return common.ErrNotFound for a missing id;
// GetNote returns (nil, nil) instead.
//
// Typical Usage
//
//	repo := notes.NewSQLiteRepository(db)
//	_ = repo.CreateNote(ctx, &models.Note{ID: id, CreatedAt: now, UpdatedAt: now})
//	_ = repo.UpdateNote(ctx, id, models.NoteUpdate{Title: models.Some("Groceries")})
//	list, _ := repo.ListNotes(ctx, models.ListFilter{Query: "groc"})
//	_ = repo.DeleteNote(ctx, id, false)
package notes
