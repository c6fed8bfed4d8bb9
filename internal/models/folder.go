package models

// Folder groups notes. Idx is the display position.
type Folder struct {
	ID   string
	Name string
	Idx  int
}

// DefaultFolders are inserted once, when the folder table is empty.
var DefaultFolders = []Folder{
	{ID: "work", Name: "Work", Idx: 0},
	{ID: "personal", Name: "Personal", Idx: 1},
	{ID: "ideas", Name: "Ideas", Idx: 2},
}
