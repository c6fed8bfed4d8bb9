package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/simplenotes/internal/logging"
	"github.com/dmitrijs2005/simplenotes/internal/models"
	"github.com/dmitrijs2005/simplenotes/internal/share"
	"github.com/google/uuid"
)

// DefaultDebounce is the quiet period after the last keystroke before saving.
const DefaultDebounce = time.Second

// ErrSessionClosed is returned by edits and saves after Close.
var ErrSessionClosed = errors.New("editor session closed")

// Store is the subset of the note repository a session needs.
type Store interface {
	GetNote(ctx context.Context, id string) (*models.Note, error)
	CreateNote(ctx context.Context, note *models.Note) error
	UpdateNote(ctx context.Context, id string, u models.NoteUpdate) error
}

// State is the lifecycle position of a Session.
type State int

const (
	StateLoading State = iota
	StateClean
	StateDirty
	StateSaving
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	case StateSaving:
		return "saving"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// changed fields beyond title/content, which are always written
type field uint8

const (
	fieldText field = 1 << iota
	fieldColor
	fieldPin
	fieldLock
)

// Option configures a Session at Open.
type Option func(*Session)

// WithDebounce sets the quiet period before text edits are saved.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) { s.debounce = d }
}

// WithClock overrides the time source for created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithErrorHandler receives errors from saves started by the debounce timer,
// which have no caller to return them to.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Session) { s.onError = fn }
}

// Session edits one note and keeps the store in step with it.
type Session struct {
	store    Store
	logger   logging.Logger
	debounce time.Duration
	now      func() time.Time
	onError  func(error)

	// held for the whole duration of a save
	saveMu sync.Mutex
	// running saves; Close waits for them
	inflight sync.WaitGroup

	mu       sync.Mutex
	note     models.Note
	state    State
	isNew    bool
	dirty    field
	rev      uint64
	timer    *time.Timer
	timerGen uint64
	lastErr  error
}

// Open starts a session for id. An empty id starts a new note with a fresh
// UUID. A missing note is not an error: the session starts blank and the
// first save creates the row.
func Open(ctx context.Context, store Store, id string, opts ...Option) (*Session, error) {
	s := &Session{
		store:    store,
		logger:   logging.Discard(),
		debounce: DefaultDebounce,
		now:      time.Now,
		state:    StateLoading,
	}
	for _, o := range opts {
		o(s)
	}
	if id == "" {
		id = uuid.NewString()
	}
	s.logger = s.logger.With("note_id", id)

	n, err := store.GetNote(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load note[%s]: %w", id, err)
	}
	if n != nil {
		s.note = n.Clone()
	} else {
		now := models.NowMillis(s.now())
		s.note = models.Note{ID: id, CreatedAt: now, UpdatedAt: now}
		s.isNew = true
	}
	s.state = StateClean
	s.logger.Debug(ctx, "editor session opened", "new", s.isNew)
	return s, nil
}

// ID returns the id of the note being edited.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.note.ID
}

// Note returns a copy of the in-memory note.
func (s *Session) Note() models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.note.Clone()
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsNew reports whether no row has been written for this note yet.
func (s *Session) IsNew() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isNew
}

// LastError returns the error of the most recent failed save, or nil once a
// save succeeds.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Share returns the plain-text export of the in-memory note.
func (s *Session) Share() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return share.Render(s.note.Title, s.note.Content)
}

// SetTitle replaces the title and restarts the debounce timer.
func (s *Session) SetTitle(title string) error {
	return s.edit(func(n *models.Note) { n.Title = title })
}

// SetContent replaces the body and restarts the debounce timer.
func (s *Session) SetContent(content string) error {
	return s.edit(func(n *models.Note) { n.Content = content })
}

// TogglePin flips the pinned flag and saves right away.
func (s *Session) TogglePin(ctx context.Context) error {
	return s.commit(ctx, fieldPin, func(n *models.Note) { n.IsPinned = !n.IsPinned })
}

// ToggleLock flips the locked flag and saves right away. Locking is a flag
// only; content is stored as is.
func (s *Session) ToggleLock(ctx context.Context) error {
	return s.commit(ctx, fieldLock, func(n *models.Note) { n.IsLocked = !n.IsLocked })
}

// SetColor sets the color override (nil restores the theme default) and
// saves right away.
func (s *Session) SetColor(ctx context.Context, color *string) error {
	if err := models.ValidateColor(color); err != nil {
		return err
	}
	c := color
	if c != nil {
		v := *c
		c = &v
	}
	return s.commit(ctx, fieldColor, func(n *models.Note) { n.ColorHex = c })
}

// Flush saves pending edits immediately, as on back navigation. A clean
// session for an existing note has nothing to write; a new note is created
// even when it is still empty.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.state == StateClean && !s.isNew {
		s.mu.Unlock()
		return nil
	}
	s.stopTimerLocked()
	s.inflight.Add(1)
	s.mu.Unlock()

	defer s.inflight.Done()
	return s.save(ctx)
}

// Close ends the session. The pending debounce timer is cancelled, a save
// that already started is allowed to finish, and later edits fail with
// ErrSessionClosed. Close does not save; call Flush first to keep edits.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return nil
	}
	s.stopTimerLocked()
	s.state = StateClosed
	s.mu.Unlock()

	s.inflight.Wait()
	return nil
}

func (s *Session) edit(fn func(n *models.Note)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return ErrSessionClosed
	}
	s.markLocked(fieldText, fn)
	s.scheduleLocked()
	return nil
}

func (s *Session) commit(ctx context.Context, f field, fn func(n *models.Note)) error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.markLocked(f, fn)
	// this save carries the pending keystrokes too
	s.stopTimerLocked()
	s.inflight.Add(1)
	s.mu.Unlock()

	defer s.inflight.Done()
	return s.save(ctx)
}

func (s *Session) markLocked(f field, fn func(n *models.Note)) {
	fn(&s.note)
	s.dirty |= f
	s.rev++
	if s.state != StateSaving {
		s.state = StateDirty
	}
}

func (s *Session) scheduleLocked() {
	s.stopTimerLocked()
	gen := s.timerGen
	s.timer = time.AfterFunc(s.debounce, func() { s.fire(gen) })
}

// stopTimerLocked cancels the pending timer. Bumping the generation also
// disarms a callback that already started but has not taken the lock yet.
func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen++
}

func (s *Session) fire(gen uint64) {
	s.mu.Lock()
	if s.state == StateClosed || gen != s.timerGen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.inflight.Add(1)
	s.mu.Unlock()

	defer s.inflight.Done()
	ctx := context.Background()
	if err := s.save(ctx); err != nil {
		s.logger.Warn(ctx, "autosave failed", "error", err)
		if s.onError != nil {
			s.onError(err)
		}
	}
}

func (s *Session) save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	snap := s.note.Clone()
	dirty := s.dirty
	rev := s.rev
	if s.state != StateClosed {
		s.state = StateSaving
	}
	s.mu.Unlock()

	now := models.NowMillis(s.now())

	existing, err := s.store.GetNote(ctx, snap.ID)
	if err != nil {
		return s.finish(ctx, rev, 0, false, fmt.Errorf("check note[%s]: %w", snap.ID, err))
	}

	if existing == nil {
		snap.UpdatedAt = max(now, snap.CreatedAt)
		snap.IsDeleted = false
		err = s.store.CreateNote(ctx, &snap)
		return s.finish(ctx, rev, snap.UpdatedAt, true, wrap("create", snap.ID, err))
	}

	updatedAt := max(now, existing.UpdatedAt+1)
	u := models.NoteUpdate{
		Title:     models.Some(snap.Title),
		Content:   models.Some(snap.Content),
		UpdatedAt: models.Some(updatedAt),
	}
	if dirty&fieldColor != 0 {
		u.ColorHex = models.Some(snap.ColorHex)
	}
	if dirty&fieldPin != 0 {
		u.IsPinned = models.Some(snap.IsPinned)
	}
	if dirty&fieldLock != 0 {
		u.IsLocked = models.Some(snap.IsLocked)
	}
	err = s.store.UpdateNote(ctx, snap.ID, u)
	return s.finish(ctx, rev, updatedAt, false, wrap("update", snap.ID, err))
}

func wrap(op, id string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s note[%s]: %w", op, id, err)
}

func (s *Session) finish(ctx context.Context, rev uint64, updatedAt int64, created bool, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	closed := s.state == StateClosed
	if err != nil {
		s.lastErr = err
		if !closed {
			s.state = StateDirty
		}
		return err
	}

	s.lastErr = nil
	s.isNew = false
	s.note.UpdatedAt = updatedAt
	if s.rev == rev {
		s.dirty = 0
		if !closed {
			s.state = StateClean
		}
	} else if !closed {
		// edited while saving; the running debounce timer saves the rest
		s.state = StateDirty
	}
	s.logger.Debug(ctx, "note saved", "created", created, "updated_at", updatedAt)
	return nil
}
