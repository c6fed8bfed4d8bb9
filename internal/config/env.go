package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

const (
	envDatabasePath = "NOTES_DB_PATH"
	envDebounce     = "NOTES_DEBOUNCE"
	envExportDir    = "NOTES_EXPORT_DIR"
	envLogLevel     = "NOTES_LOG_LEVEL"
)

// parseEnv overlays cfg with NOTES_* variables. Values from envFile are used
// when the variable is not set in the process environment. A missing
// envFile is not an error.
func parseEnv(cfg *Config, envFile string, lookup func(string) (string, bool)) error {
	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read env file %s: %w", envFile, err)
		}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	if v, ok := get(envDatabasePath); ok {
		cfg.DatabasePath = v
	}
	if v, ok := get(envDebounce); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envDebounce, err)
		}
		cfg.DebounceInterval = d
	}
	if v, ok := get(envExportDir); ok {
		cfg.ExportDir = v
	}
	if v, ok := get(envLogLevel); ok {
		cfg.LogLevel = v
	}
	return nil
}
