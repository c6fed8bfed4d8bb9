package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/simplenotes/internal/flagx"
	"github.com/dmitrijs2005/simplenotes/internal/timex"
)

// JsonConfig is a DTO used only for unmarshalling the config file. Absent
// keys leave the corresponding Config field untouched.
type JsonConfig struct {
	DatabasePath     *string         `json:"database_path"`
	DebounceInterval *timex.Duration `json:"debounce_interval"`
	ExportDir        *string         `json:"export_dir"`
	LogLevel         *string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.DebounceInterval != nil {
		cfg.DebounceInterval = jc.DebounceInterval.Duration
	}
	if jc.ExportDir != nil {
		cfg.ExportDir = *jc.ExportDir
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
