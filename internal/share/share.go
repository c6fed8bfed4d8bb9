// Package share produces the read-only plain-text export of a note and hands
// it to a BlobWriter, the stand-in for an OS share sheet.
package share

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/simplenotes/internal/filex"
	"github.com/dmitrijs2005/simplenotes/internal/models"
)

// Render formats a note as "title\n\ncontent".
func Render(title, content string) string {
	return title + "\n\n" + content
}

// BlobWriter stores a named text blob and returns where it went.
type BlobWriter interface {
	WriteText(ctx context.Context, name, text string) (string, error)
}

// DirWriter writes blobs as files inside Dir.
type DirWriter struct {
	Dir string
}

// WriteText writes text to Dir/name, creating Dir if needed, and returns
// the file path.
func (w DirWriter) WriteText(ctx context.Context, name, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir, err := filex.EnsureDir(w.Dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := filex.WriteFileAtomic(path, []byte(text), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Exporter sends the plain-text form of notes to a BlobWriter.
type Exporter struct {
	w BlobWriter
}

// NewExporter returns an Exporter writing through w.
func NewExporter(w BlobWriter) *Exporter {
	return &Exporter{w: w}
}

// Export writes the note's plain-text form and returns the blob location.
func (e *Exporter) Export(ctx context.Context, n models.Note) (string, error) {
	loc, err := e.w.WriteText(ctx, FileName(n.ID), Render(n.Title, n.Content))
	if err != nil {
		return "", fmt.Errorf("share note[%s]: %w", n.ID, err)
	}
	return loc, nil
}

// FileName derives a file name from a note id; distinct ids never share one.
func FileName(id string) string {
	return "note-" + filex.SafeName(id) + ".txt"
}
