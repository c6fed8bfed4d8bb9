package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/simplenotes/internal/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs. The real App type
// satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context, f models.ListFilter) error
	Trash(ctx context.Context) error
	Folders(ctx context.Context) error
	Tags(ctx context.Context) error

	Open(ctx context.Context, id string) error
	Show(ctx context.Context) error
	SetTitle(ctx context.Context, title string) error
	EditContent(ctx context.Context) error
	SetColor(ctx context.Context, color string) error
	TogglePin(ctx context.Context) error
	ToggleLock(ctx context.Context) error
	Tag(ctx context.Context, name string) error
	Untag(ctx context.Context, name string) error
	Share(ctx context.Context) error
	Back(ctx context.Context) error

	Delete(ctx context.Context, id string, permanent bool) error
	Restore(ctx context.Context, id string) error

	Export(ctx context.Context, dir string) error
	Import(ctx context.Context, dir string) error
}

const helpText = `Available commands:
  list [text]        live notes, pinned first; optional substring filter
  pinned             pinned notes only
  folder <id>        notes in a folder
  trash              deleted notes
  folders | tags     list folders or tags
  new                start a new note
  open <id>          open a note for editing
  show               print the open note
  title <text>       set the title (autosaved)
  content            enter the body (autosaved)
  color <#hex|none>  set or clear the color
  pin | lock         toggle pinned or locked
  tag | untag <name> add or remove a tag on the open note
  share              write the open note to the export directory
  back               save and close the open note
  delete [id]        move a note to the trash (default: the open one)
  restore <id>       bring a note back from the trash
  purge <id>         delete a note permanently
  export [dir]       back up every note as Markdown
  import <dir>       restore notes from a Markdown backup
  exit | quit        save and leave`

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to a. Handler errors are reported and the loop goes on;
// the in-memory note survives a failed save so the user can retry.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	prompt := interactive()
	for {
		if prompt {
			fmt.Printf("notes%s> ", statusFn())
		}
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			cmdErr = a.List(ctx, models.ListFilter{Query: rest})

		case "pinned":
			cmdErr = a.List(ctx, models.ListFilter{PinnedOnly: true})

		case "folder":
			if len(args) == 0 {
				printlnFn("Usage: folder <id>")
				continue
			}
			cmdErr = a.List(ctx, models.ListFilter{FolderID: args[0]})

		case "trash":
			cmdErr = a.Trash(ctx)

		case "folders":
			cmdErr = a.Folders(ctx)

		case "tags":
			cmdErr = a.Tags(ctx)

		case "new":
			cmdErr = a.Open(ctx, "")

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <id>")
				continue
			}
			cmdErr = a.Open(ctx, args[0])

		case "show":
			cmdErr = a.Show(ctx)

		case "title":
			cmdErr = a.SetTitle(ctx, rest)

		case "content":
			cmdErr = a.EditContent(ctx)

		case "color":
			if len(args) == 0 {
				printlnFn("Usage: color <#hex|none>")
				continue
			}
			cmdErr = a.SetColor(ctx, args[0])

		case "pin":
			cmdErr = a.TogglePin(ctx)

		case "lock":
			cmdErr = a.ToggleLock(ctx)

		case "tag", "untag":
			if len(args) == 0 {
				printlnFn("Usage: " + cmd + " <name>")
				continue
			}
			if cmd == "tag" {
				cmdErr = a.Tag(ctx, args[0])
			} else {
				cmdErr = a.Untag(ctx, args[0])
			}

		case "share":
			cmdErr = a.Share(ctx)

		case "back", "close":
			cmdErr = a.Back(ctx)

		case "delete":
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			cmdErr = a.Delete(ctx, id, false)

		case "purge":
			if len(args) == 0 {
				printlnFn("Usage: purge <id>")
				continue
			}
			cmdErr = a.Delete(ctx, args[0], true)

		case "restore":
			if len(args) == 0 {
				printlnFn("Usage: restore <id>")
				continue
			}
			cmdErr = a.Restore(ctx, args[0])

		case "export":
			dir := ""
			if len(args) > 0 {
				dir = args[0]
			}
			cmdErr = a.Export(ctx, dir)

		case "import":
			if len(args) == 0 {
				printlnFn("Usage: import <dir>")
				continue
			}
			cmdErr = a.Import(ctx, args[0])

		case "exit", "quit":
			if err := a.Back(ctx); err != nil {
				printlnFn(describe(err))
			}
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(describe(cmdErr))
		}
	}
}
