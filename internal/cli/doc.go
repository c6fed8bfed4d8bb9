// Package cli provides the interactive notes command-line client.
//
// It wires configuration, the local SQLite store, editor sessions, sharing
// and backup behind a small REPL. At most one note is open at a time; edits
// to its title and content are autosaved after the debounce interval, while
// pin, lock and color changes are saved at once. Leaving a note ("back"),
// opening another one or exiting flushes pending edits first.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command list.
package cli
