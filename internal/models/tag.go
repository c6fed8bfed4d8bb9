package models

// Tag is a named label that can be attached to any number of notes.
type Tag struct {
	ID       string
	Name     string
	ColorHex *string
}
