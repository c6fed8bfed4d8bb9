// Package models defines the note, folder and tag records persisted by the
// local store, plus the optional-field update record used for partial writes.
package models

import "time"

// Note is the primary entity. Timestamps are milliseconds since the Unix epoch.
type Note struct {
	ID         string
	Title      string
	Content    string
	FolderID   *string
	ColorHex   *string
	IsPinned   bool
	IsArchived bool
	IsLocked   bool
	IsDeleted  bool
	CreatedAt  int64
	UpdatedAt  int64
}

// ListFilter narrows ListNotes. The zero value lists every live note.
type ListFilter struct {
	// Query is matched case-insensitively as a substring of title or content.
	Query      string
	PinnedOnly bool
	FolderID   string
}

// NowMillis converts t to the millisecond representation stored in the database.
func NowMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// Clone returns a deep copy; pointer fields are not shared with n.
func (n Note) Clone() Note {
	c := n
	c.FolderID = cloneString(n.FolderID)
	c.ColorHex = cloneString(n.ColorHex)
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// StringPtr is a convenience for filling nullable fields.
func StringPtr(s string) *string {
	return &s
}
