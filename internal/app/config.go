package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vk/psetgrid/internal/varparsing"
)

// Output formats accepted by Config.OutputFormat.
const (
	FormatHCL   = "hcl"
	FormatJSON  = "json"
	FormatTable = "table"
	FormatTree  = "tree"
)

// Formats lists every output format.
var Formats = []string{FormatHCL, FormatJSON, FormatTable, FormatTree}

var (
	logFormats = []string{"text", "json"}
	logLevels  = []string{"debug", "info", "warn", "error"}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPaths are HCL files or directories.
	ConfigPaths []string
	// Builtin declares the compiled-in catalog before any file is loaded.
	Builtin bool
	// Harness holds the inputMC and Events options of the test harness.
	Harness varparsing.Options

	LogFormat    string
	LogLevel     string
	OutputFormat string

	ValidateOnly bool
	Watch        bool
}

// NewConfig validates cfg and fills in what follows from it. Without any
// config path the built-in catalog is used.
func NewConfig(cfg Config) (*Config, error) {
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if !slices.Contains(Formats, cfg.OutputFormat) {
		return nil, fmt.Errorf("invalid format %q: must be one of %v", cfg.OutputFormat, Formats)
	}
	if cfg.Harness.Events < -1 {
		return nil, fmt.Errorf("invalid Events %d: must be -1 or more", cfg.Harness.Events)
	}
	if len(cfg.ConfigPaths) == 0 {
		if cfg.Watch {
			return nil, errors.New("watch needs at least one config path")
		}
		cfg.Builtin = true
	}
	cfg.ConfigPaths = slices.Clone(cfg.ConfigPaths)
	return &cfg, nil
}
