package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/simplenotes/internal/backup"
	"github.com/dmitrijs2005/simplenotes/internal/common"
	"github.com/dmitrijs2005/simplenotes/internal/config"
	"github.com/dmitrijs2005/simplenotes/internal/editor"
	"github.com/dmitrijs2005/simplenotes/internal/filex"
	"github.com/dmitrijs2005/simplenotes/internal/logging"
	"github.com/dmitrijs2005/simplenotes/internal/share"
	"github.com/dmitrijs2005/simplenotes/internal/storage"
)

var ErrNoOpenNote = errors.New("no note is open (use 'new' or 'open <id>')")

type App struct {
	config *config.Config
	store  *storage.Store
	backup *backup.Service
	sharer *share.Exporter
	logger logging.Logger

	reader *bufio.Reader
	out    *syncWriter

	session *editor.Session
}

// NewApp opens (creating if needed) the database named in c and prepares the
// services the REPL uses.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}
	store, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}
	return newApp(c, store, logger, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, store *storage.Store, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		store:  store,
		backup: backup.NewService(store.DB(), logger),
		sharer: share.NewExporter(share.DirWriter{Dir: c.ExportDir}),
		logger: logger,
		reader: bufio.NewReader(in),
		out:    &syncWriter{w: out},
	}
}

// Run starts the REPL and releases the store when the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.closeSession(ctx); err != nil {
			a.logger.Warn(ctx, "could not save the open note", "error", err)
		}
		if err := a.store.Close(); err != nil {
			a.logger.Error(ctx, "error closing database", "error", err)
		}
	}()

	a.printf("Notes (type 'help' for commands)\n")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) status() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", shortID(a.session.ID()), a.session.State())
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// syncWriter serializes writes; autosave warnings arrive from timer goroutines.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// onAutosaveError is called from the debounce timer goroutine.
func (a *App) onAutosaveError(err error) {
	a.printf("\n%s\n", describe(err))
}

// describe turns an error into a line for the user.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrStoreUnavailable):
		return "Storage is unavailable; your edits are kept in memory, try again: " + err.Error()
	case errors.Is(err, common.ErrConstraintViolation):
		return "Rejected by the store: " + err.Error()
	case errors.Is(err, common.ErrNotFound):
		return "Not found: " + err.Error()
	}
	return "Error: " + err.Error()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
