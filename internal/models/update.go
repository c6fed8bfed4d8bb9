package models

// Optional holds a value that is either present or absent. The zero value is
// absent, so an empty NoteUpdate{} writes nothing.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a present Optional carrying v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// NoteUpdate is a partial update of a note. Only present fields are written.
// A present nil FolderID or ColorHex clears the column.
//
// When UpdatedAt is absent the store bumps updated_at itself; when present the
// explicit value is written as given (used by import to keep original times).
type NoteUpdate struct {
	Title      Optional[string]
	Content    Optional[string]
	FolderID   Optional[*string]
	ColorHex   Optional[*string]
	IsPinned   Optional[bool]
	IsArchived Optional[bool]
	IsLocked   Optional[bool]
	IsDeleted  Optional[bool]
	UpdatedAt  Optional[int64]
}

// IsEmpty reports whether no field is present.
func (u NoteUpdate) IsEmpty() bool {
	return !u.Title.Set && !u.Content.Set && !u.FolderID.Set && !u.ColorHex.Set &&
		!u.IsPinned.Set && !u.IsArchived.Set && !u.IsLocked.Set && !u.IsDeleted.Set &&
		!u.UpdatedAt.Set
}

// Apply copies the present fields of u onto n.
func (u NoteUpdate) Apply(n *Note) {
	if v, ok := u.Title.Get(); ok {
		n.Title = v
	}
	if v, ok := u.Content.Get(); ok {
		n.Content = v
	}
	if v, ok := u.FolderID.Get(); ok {
		n.FolderID = cloneString(v)
	}
	if v, ok := u.ColorHex.Get(); ok {
		n.ColorHex = cloneString(v)
	}
	if v, ok := u.IsPinned.Get(); ok {
		n.IsPinned = v
	}
	if v, ok := u.IsArchived.Get(); ok {
		n.IsArchived = v
	}
	if v, ok := u.IsLocked.Get(); ok {
		n.IsLocked = v
	}
	if v, ok := u.IsDeleted.Get(); ok {
		n.IsDeleted = v
	}
	if v, ok := u.UpdatedAt.Get(); ok {
		n.UpdatedAt = v
	}
}
