package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/datagrid/internal/logging"
	"github.com/rshade/datagrid/internal/pagination"
	"github.com/rshade/datagrid/internal/render"
	"github.com/rshade/datagrid/internal/table"
)

// CurrentVersion is the config schema version written by New.
const CurrentVersion = "1.0.0"

// supportedVersions is the semver constraint a config file version must satisfy.
const supportedVersions = ">= 1.0.0, < 2.0.0"

// Environment variables that override file values.
const (
	EnvConfig    = "DATAGRID_CONFIG"
	EnvHome      = "DATAGRID_HOME"
	EnvLogLevel  = "DATAGRID_LOG_LEVEL"
	EnvLogFormat = "DATAGRID_LOG_FORMAT"
	EnvPageSize  = "DATAGRID_PAGE_SIZE"
)

// Config errors.
var (
	ErrUnsupportedVersion = errors.New("unsupported config version")
	ErrInvalidConfig      = errors.New("invalid config")
)

// Config is the datagrid configuration file.
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Table   TableConfig   `yaml:"table"   json:"table"`
	Output  OutputConfig  `yaml:"output"  json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// TableConfig holds table defaults applied when flags leave them unset.
type TableConfig struct {
	PageSize       int    `yaml:"page_size"       json:"page_size"`
	PageSizeStep   int    `yaml:"page_size_step"  json:"page_size_step"`
	BoundPolicy    string `yaml:"bound_policy"    json:"bound_policy"`
	FirstDirection string `yaml:"first_direction" json:"first_direction"`
	IDField        string `yaml:"id_field"        json:"id_field"`
}

// OutputConfig holds static rendering defaults.
type OutputConfig struct {
	Format  string `yaml:"format"   json:"format"`
	NoColor bool   `yaml:"no_color" json:"no_color"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level"  json:"level"`
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file"   json:"file"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Version: CurrentVersion,
		Table: TableConfig{
			PageSize:       pagination.DefaultStep,
			PageSizeStep:   pagination.DefaultStep,
			BoundPolicy:    pagination.BoundCeil.String(),
			FirstDirection: string(table.Ascending),
			IDField:        "id",
		},
		Output: OutputConfig{
			Format: render.OutputTable,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// Load reads the config file at path over the defaults, applies environment
// overrides and validates the result. An empty path loads defaults only.
func Load(path string) (*Config, error) {
	cfg := New()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvPageSize, v)
		}
		c.Table.PageSize = size
	}
	return nil
}

// Validate checks the config version and every enumerated value.
func (c *Config) Validate() error {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	v, err := semver.NewVersion(c.Version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, c.Version, err)
	}
	constraint, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedVersion, c.Version, supportedVersions)
	}

	if c.Table.PageSize <= 0 {
		return fmt.Errorf("%w: table.page_size must be positive, got %d", ErrInvalidConfig, c.Table.PageSize)
	}
	if c.Table.PageSizeStep <= 0 {
		return fmt.Errorf("%w: table.page_size_step must be positive, got %d", ErrInvalidConfig, c.Table.PageSizeStep)
	}
	if _, err = c.Table.Bounds(); err != nil {
		return fmt.Errorf("%w: table.bound_policy: %w", ErrInvalidConfig, err)
	}
	if _, err = c.Table.Direction(); err != nil {
		return fmt.Errorf("%w: table.first_direction: %w", ErrInvalidConfig, err)
	}

	switch strings.ToLower(c.Output.Format) {
	case render.OutputTable, render.OutputJSON, render.OutputNDJSON:
	default:
		return fmt.Errorf("%w: output.format %q (must be table, json, or ndjson)", ErrInvalidConfig, c.Output.Format)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: logging.format %q (must be console or json)", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// Bounds parses the bound policy.
func (t TableConfig) Bounds() (pagination.BoundPolicy, error) {
	return pagination.ParseBoundPolicy(t.BoundPolicy)
}

// Direction parses the first sort direction. Empty means ascending.
func (t TableConfig) Direction() (table.Direction, error) {
	if t.FirstDirection == "" {
		return table.Ascending, nil
	}
	return table.ParseDirection(t.FirstDirection)
}
