package backup

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/simplenotes/internal/models"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrInvalidFrontMatter is returned for files that are not a note backup.
var ErrInvalidFrontMatter = errors.New("invalid front matter")

type frontMatter struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Folder     string   `yaml:"folder,omitempty"`
	FolderName string   `yaml:"folder_name,omitempty"`
	FolderIdx  *int     `yaml:"folder_idx,omitempty"`
	Color      string   `yaml:"color,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
	Pinned     bool     `yaml:"pinned,omitempty"`
	Archived   bool     `yaml:"archived,omitempty"`
	Locked     bool     `yaml:"locked,omitempty"`
	Deleted    bool     `yaml:"deleted,omitempty"`
	CreatedAt  int64    `yaml:"created_at"`
	UpdatedAt  int64    `yaml:"updated_at"`
}

// folderRef describes the folder a note lives in. Name and Idx are empty
// for files written before they were recorded.
type folderRef struct {
	ID   string
	Name string
	Idx  *int
}

// document is one note with its tag names and folder.
type document struct {
	Note   models.Note
	Tags   []string
	Folder *folderRef
}

func encode(d document) ([]byte, error) {
	n := d.Note
	fm := frontMatter{
		ID:        n.ID,
		Title:     n.Title,
		Tags:      d.Tags,
		Pinned:    n.IsPinned,
		Archived:  n.IsArchived,
		Locked:    n.IsLocked,
		Deleted:   n.IsDeleted,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.FolderID != nil {
		fm.Folder = *n.FolderID
		if d.Folder != nil && d.Folder.ID == *n.FolderID {
			fm.FolderName = d.Folder.Name
			fm.FolderIdx = d.Folder.Idx
		}
	}
	if n.ColorHex != nil {
		fm.Color = *n.ColorHex
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}
	buf.WriteString(delimiter + "\n\n")
	buf.WriteString(n.Content)
	return buf.Bytes(), nil
}

// delimiterLine returns the length of a delimiter line at the start of b,
// accepting either line ending, or 0 when b does not start with one.
func delimiterLine(b []byte) int {
	switch {
	case bytes.HasPrefix(b, []byte(delimiter+"\n")):
		return len(delimiter) + 1
	case bytes.HasPrefix(b, []byte(delimiter+"\r\n")):
		return len(delimiter) + 2
	}
	return 0
}

// split separates the front matter from the body. Line endings are only
// looked at around the delimiters; the body is returned as stored.
func split(data []byte) (head, body []byte, err error) {
	open := delimiterLine(data)
	if open == 0 {
		return nil, nil, fmt.Errorf("%w: missing opening delimiter", ErrInvalidFrontMatter)
	}
	rest := data[open:]

	for pos := 0; ; {
		i := bytes.IndexByte(rest[pos:], '\n')
		if i < 0 {
			return nil, nil, fmt.Errorf("%w: missing closing delimiter", ErrInvalidFrontMatter)
		}
		start := pos + i + 1
		if n := delimiterLine(rest[start:]); n > 0 {
			head, body = rest[:start], rest[start+n:]
			break
		}
		pos = start
	}

	// the blank line encode puts after the closing delimiter
	switch {
	case bytes.HasPrefix(body, []byte("\r\n")):
		body = body[2:]
	case bytes.HasPrefix(body, []byte("\n")):
		body = body[1:]
	}
	return head, body, nil
}

// decode parses a file produced by encode. The content is kept byte for
// byte, including any CRLF line endings.
func decode(data []byte) (document, error) {
	head, body, err := split(data)
	if err != nil {
		return document{}, err
	}

	var fm frontMatter
	if err := yaml.Unmarshal(bytes.ReplaceAll(head, []byte("\r\n"), []byte("\n")), &fm); err != nil {
		return document{}, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}
	if fm.ID == "" {
		return document{}, fmt.Errorf("%w: missing id", ErrInvalidFrontMatter)
	}

	d := document{Tags: fm.Tags}
	d.Note = models.Note{
		ID:         fm.ID,
		Title:      fm.Title,
		Content:    string(body),
		IsPinned:   fm.Pinned,
		IsArchived: fm.Archived,
		IsLocked:   fm.Locked,
		IsDeleted:  fm.Deleted,
		CreatedAt:  fm.CreatedAt,
		UpdatedAt:  fm.UpdatedAt,
	}
	if fm.Folder != "" {
		d.Note.FolderID = models.StringPtr(fm.Folder)
		d.Folder = &folderRef{ID: fm.Folder, Name: fm.FolderName, Idx: fm.FolderIdx}
	}
	if fm.Color != "" {
		d.Note.ColorHex = models.StringPtr(fm.Color)
		if err := models.ValidateColor(d.Note.ColorHex); err != nil {
			return document{}, err
		}
	}
	return d, nil
}
