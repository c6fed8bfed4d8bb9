package cli

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/simplenotes/internal/editor"
	"github.com/dmitrijs2005/simplenotes/internal/models"
	"github.com/google/uuid"
)

const timeLayout = "2006-01-02 15:04"

func (a *App) List(ctx context.Context, f models.ListFilter) error {
	list, err := a.store.Notes.ListNotes(ctx, f)
	if err != nil {
		return err
	}
	a.printNotes(list)
	return nil
}

func (a *App) Trash(ctx context.Context) error {
	list, err := a.store.Notes.ListDeleted(ctx)
	if err != nil {
		return err
	}
	a.printNotes(list)
	return nil
}

func (a *App) printNotes(list []models.Note) {
	if len(list) == 0 {
		a.printf("No notes.\n")
		return
	}
	for _, n := range list {
		a.printf("%s  %s  %s  %s\n", flags(n), n.ID, time.UnixMilli(n.UpdatedAt).Format(timeLayout), displayTitle(n))
	}
}

func flags(n models.Note) string {
	b := []byte("--")
	if n.IsPinned {
		b[0] = 'P'
	}
	if n.IsLocked {
		b[1] = 'L'
	}
	return string(b)
}

func displayTitle(n models.Note) string {
	if n.Title != "" {
		return n.Title
	}
	first, _, _ := strings.Cut(n.Content, "\n")
	if first == "" {
		return "(untitled)"
	}
	return first
}

func (a *App) Folders(ctx context.Context) error {
	list, err := a.store.Folders.List(ctx)
	if err != nil {
		return err
	}
	for _, f := range list {
		a.printf("%d  %s  %s\n", f.Idx, f.ID, f.Name)
	}
	return nil
}

func (a *App) Tags(ctx context.Context) error {
	list, err := a.store.Tags.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No tags.\n")
	}
	for _, t := range list {
		a.printf("%s\n", t.Name)
	}
	return nil
}

// Open starts an editor session for id, or for a new note when id is empty.
// A note that is already open is saved and closed first.
func (a *App) Open(ctx context.Context, id string) error {
	if err := a.closeSession(ctx); err != nil {
		return err
	}
	s, err := editor.Open(ctx, a.store.Notes, id,
		editor.WithDebounce(a.config.DebounceInterval),
		editor.WithLogger(a.logger),
		editor.WithErrorHandler(a.onAutosaveError),
	)
	if err != nil {
		return err
	}
	a.session = s
	if s.IsNew() {
		a.printf("New note %s\n", s.ID())
		return nil
	}
	return a.Show(ctx)
}

func (a *App) current() (*editor.Session, error) {
	if a.session == nil {
		return nil, ErrNoOpenNote
	}
	return a.session, nil
}

func (a *App) Show(ctx context.Context) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	n := s.Note()
	a.printf("id:      %s\n", n.ID)
	a.printf("title:   %s\n", n.Title)
	a.printf("flags:   %s\n", flags(n))
	if n.ColorHex != nil {
		a.printf("color:   %s\n", *n.ColorHex)
	}
	if n.FolderID != nil {
		a.printf("folder:  %s\n", *n.FolderID)
	}
	if !s.IsNew() {
		tags, err := a.store.Tags.ListForNote(ctx, n.ID)
		if err != nil {
			return err
		}
		if len(tags) > 0 {
			names := make([]string, 0, len(tags))
			for _, t := range tags {
				names = append(names, t.Name)
			}
			a.printf("tags:    %s\n", strings.Join(names, ", "))
		}
	}
	a.printf("updated: %s\n\n%s\n", time.UnixMilli(n.UpdatedAt).Format(timeLayout), n.Content)
	return nil
}

func (a *App) SetTitle(ctx context.Context, title string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	return s.SetTitle(title)
}

func (a *App) EditContent(ctx context.Context) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	text, err := GetMultiline(a.reader, "Content:", a.out)
	if err != nil {
		return err
	}
	return s.SetContent(text)
}

// SetColor accepts a hex color, or "none" to return to the theme default.
func (a *App) SetColor(ctx context.Context, color string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	var c *string
	if color != "none" {
		c = &color
	}
	return s.SetColor(ctx, c)
}

func (a *App) TogglePin(ctx context.Context) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if err := s.TogglePin(ctx); err != nil {
		return err
	}
	a.printf("pinned: %t\n", s.Note().IsPinned)
	return nil
}

func (a *App) ToggleLock(ctx context.Context) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if err := s.ToggleLock(ctx); err != nil {
		return err
	}
	a.printf("locked: %t\n", s.Note().IsLocked)
	return nil
}

// Tag attaches a tag, creating it on first use. The note is saved first so
// the association has a row to point at.
func (a *App) Tag(ctx context.Context, name string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if err := s.Flush(ctx); err != nil {
		return err
	}
	t, err := a.store.Tags.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if t == nil {
		t = &models.Tag{ID: uuid.NewString(), Name: name}
		if err := a.store.Tags.Create(ctx, t); err != nil {
			return err
		}
	}
	return a.store.Tags.Attach(ctx, s.ID(), t.ID)
}

func (a *App) Untag(ctx context.Context, name string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	t, err := a.store.Tags.GetByName(ctx, name)
	if err != nil || t == nil {
		return err
	}
	return a.store.Tags.Detach(ctx, s.ID(), t.ID)
}

func (a *App) Share(ctx context.Context) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	loc, err := a.sharer.Export(ctx, s.Note())
	if err != nil {
		return err
	}
	a.printf("Shared to %s\n", loc)
	return nil
}

// Back saves pending edits and closes the open note. It is a no-op when no
// note is open.
func (a *App) Back(ctx context.Context) error {
	return a.closeSession(ctx)
}

// closeSession flushes and closes the current session. On a failed flush the
// session stays open so nothing typed is lost.
func (a *App) closeSession(ctx context.Context) error {
	if a.session == nil {
		return nil
	}
	if err := a.session.Flush(ctx); err != nil {
		return err
	}
	if err := a.session.Close(); err != nil {
		return err
	}
	a.session = nil
	return nil
}

// Delete moves a note to the trash, or removes it for good when permanent.
// An empty id means the open note, which is closed first.
func (a *App) Delete(ctx context.Context, id string, permanent bool) error {
	if a.session != nil && (id == "" || id == a.session.ID()) {
		id = a.session.ID()
		if err := a.closeSession(ctx); err != nil {
			return err
		}
	}
	if id == "" {
		return ErrNoOpenNote
	}
	if err := a.store.Notes.DeleteNote(ctx, id, permanent); err != nil {
		return err
	}
	if permanent {
		a.printf("Deleted %s permanently\n", id)
	} else {
		a.printf("Moved %s to the trash\n", id)
	}
	return nil
}

func (a *App) Restore(ctx context.Context, id string) error {
	if err := a.store.Notes.RestoreNote(ctx, id); err != nil {
		return err
	}
	a.printf("Restored %s\n", id)
	return nil
}

// Export writes a Markdown backup; the default directory is "backup" under
// the configured export directory.
func (a *App) Export(ctx context.Context, dir string) error {
	if dir == "" {
		dir = filepath.Join(a.config.ExportDir, "backup")
	}
	if err := a.closeSession(ctx); err != nil {
		return err
	}
	n, err := a.backup.Export(ctx, dir)
	if err != nil {
		return err
	}
	a.printf("Exported %d notes to %s\n", n, dir)
	return nil
}

func (a *App) Import(ctx context.Context, dir string) error {
	if err := a.closeSession(ctx); err != nil {
		return err
	}
	res, err := a.backup.Import(ctx, dir)
	if err != nil {
		return err
	}
	a.printf("Imported %d new, %d updated", res.Created, res.Updated)
	if len(res.Skipped) > 0 {
		a.printf(", skipped %s", strings.Join(res.Skipped, ", "))
	}
	a.printf("\n")
	return nil
}

var _ execIface = (*App)(nil)
