// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/powercards/internal/schemas"
	schemafiles "github.com/jonathan/powercards/schemas"
)

// Environment variables consulted by FromEnv
const (
	EnvInputDir    = "POWERCARDS_INPUT_DIR"
	EnvInputExt    = "POWERCARDS_INPUT_EXT"
	EnvOutputDir   = "POWERCARDS_OUTPUT_DIR"
	EnvDatabase    = "POWERCARDS_DB"
	EnvDatabaseURL = "DATABASE_URL"
	EnvSentinelID  = "POWERCARDS_SENTINEL_ID"
	EnvTitle       = "POWERCARDS_TITLE"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional in the file; missing values come from the environment
// or Defaults, and CLI flags override everything.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir,omitempty" validate:"required"`            // Directory of character files
	InputExt  string `json:"input_ext,omitempty" validate:"required,startswith=."` // Extension selecting character files
	OutputDir string `json:"output_dir,omitempty" validate:"required"`           // Directory receiving printable sheets
	Database  string `json:"database,omitempty" validate:"required"`             // SQLite path or PostgreSQL URL

	// Rendering
	SentinelID string `json:"sentinel_id,omitempty" validate:"required"` // id of the element rewritten in stored fragments
	Title      string `json:"title,omitempty" validate:"required"`       // <title> of every composed sheet

	// Behavior
	PDF     bool `json:"pdf,omitempty"`     // Also print each sheet to PDF with headless Chrome
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		InputDir:   "./data/characters",
		InputExt:   ".dnd4e",
		OutputDir:  "./data/printables",
		Database:   "./data/powers.db",
		SentinelID: "detail",
		Title:      "Power Texts",
	}
}

// FromEnv builds a Config from environment variables. getenv is usually os.Getenv.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		InputDir:   getenv(EnvInputDir),
		InputExt:   getenv(EnvInputExt),
		OutputDir:  getenv(EnvOutputDir),
		Database:   getenv(EnvDatabase),
		SentinelID: getenv(EnvSentinelID),
		Title:      getenv(EnvTitle),
	}
	if cfg.Database == "" {
		cfg.Database = getenv(EnvDatabaseURL)
	}
	return cfg
}

// LoadConfig loads configuration from a JSON file and checks it against the
// embedded config schema.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := schemas.ValidateJSONBytes(schemafiles.ConfigSchemaName, schemafiles.ConfigSchema, data); err != nil {
		return nil, fmt.Errorf("config file %s does not match schema: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks that the merged configuration is complete and that the
// input directory exists.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	info, err := os.Stat(c.InputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("config error: input directory not found: %s", c.InputDir)
		}
		return fmt.Errorf("config error: input directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("config error: input path is not a directory: %s", c.InputDir)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to layer config file, environment and built-in defaults under CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.InputDir == "" {
		result.InputDir = defaults.InputDir
	}
	if result.InputExt == "" {
		result.InputExt = defaults.InputExt
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Database == "" {
		result.Database = defaults.Database
	}
	if result.SentinelID == "" {
		result.SentinelID = defaults.SentinelID
	}
	if result.Title == "" {
		result.Title = defaults.Title
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
