package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/simplenotes/internal/flagx"
)

// parseFlags overlays cfg with the flags it owns; other arguments are
// ignored (see flagx.FilterArgs).
func parseFlags(cfg *Config, args []string) error {
	owned := flagx.FilterArgs(args, []string{"-d", "-b", "-e", "-l"})

	fs := flag.NewFlagSet("notes", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the SQLite database file")
	fs.DurationVar(&cfg.DebounceInterval, "b", cfg.DebounceInterval, "autosave debounce interval")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "directory for shared notes and backups")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(owned); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
