// Package config loads runtime configuration for the notes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. A .env file in the working directory and NOTES_* environment
//     variables; real environment variables win over the file.
//  4. Command-line flags.
//
// Supported flags
//
//	-d string     path to the SQLite database file
//	-b duration   autosave debounce interval, e.g. 500ms
//	-e string     directory for shared notes and backups
//	-l string     log level: debug, info, warn or error
//
// Environment variables
//
//	NOTES_DB_PATH, NOTES_DEBOUNCE, NOTES_EXPORT_DIR, NOTES_LOG_LEVEL
//
// # JSON schema
//
// Intervals use timex.Duration, so they may be strings like "1s" or integer
// nanoseconds:
//
//	{
//	  "database_path": "notes.db",
//	  "debounce_interval": "1s",
//	  "export_dir": "exports",
//	  "log_level": "info"
//	}
//
// The merged result is validated; Load reports the first invalid field.
package config
