package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
)

const defaultEnvFile = ".env"

// Config holds runtime settings for the notes CLI.
type Config struct {
	DatabasePath     string        `validate:"required"`
	DebounceInterval time.Duration `validate:"gt=0"`
	ExportDir        string        `validate:"required"`
	LogLevel         string        `validate:"oneof=debug info warn error"`
}

// LoadDefaults populates c with the built-in defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "simplenotes.db"
	c.DebounceInterval = time.Second
	c.ExportDir = "exports"
	c.LogLevel = "info"
}

var validate = validator.New()

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and args (usually os.Args[1:]), later sources overriding earlier ones.
func LoadConfig(args []string) (*Config, error) {
	return load(args, defaultEnvFile, os.LookupEnv)
}

func load(args []string, envFile string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, envFile, lookup); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
