package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vk/psetgrid/internal/app"
	"github.com/vk/psetgrid/internal/varparsing"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

type flags struct {
	settings     string
	logFormat    string
	logLevel     string
	format       string
	builtin      bool
	validateOnly bool
	watch        bool
}

const longHelp = `psetgrid - a registry of typed parameter sets for the track trigger chain.

Arguments are HCL files or directories to load, followed by the harness
options in key=value form:

  inputMC=FILE   file listing the input samples, one per line
  Events=N       number of events to process, -1 for all

Without any path the built-in catalog and the test harness process are used.`

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		f          flags
		positional []string
		ran        bool
	)
	cmd := &cobra.Command{
		Use:           "psetgrid [flags] [PATH...] [inputMC=FILE] [Events=N]",
		Short:         "Build, validate and render parameter-set configurations.",
		Long:          longHelp,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			positional = args
			ran = true
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)
	cmd.CompletionOptions.DisableDefaultCmd = true

	fs := cmd.Flags()
	fs.StringVar(&f.settings, "settings", "", "YAML settings file providing defaults for every other flag.")
	fs.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	fs.StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.StringVarP(&f.format, "format", "o", app.FormatHCL, "Output format. Options: "+strings.Join(app.Formats, ", ")+".")
	fs.BoolVar(&f.builtin, "builtin", false, "Declare the built-in catalog before loading the given paths.")
	fs.BoolVar(&f.validateOnly, "validate-only", false, "Validate the configuration without rendering it.")
	fs.BoolVarP(&f.watch, "watch", "w", false, "Rebuild whenever a configuration file changes.")

	if err := cmd.Execute(); err != nil {
		return nil, false, usageError("%s", err)
	}
	if !ran {
		// Help was requested and already printed.
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.", "args", positional)

	cfg, err := buildConfig(fs, f, positional)
	if err != nil {
		return nil, false, err
	}
	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

// buildConfig merges the settings file, when given, under the flags: a flag
// set on the command line always wins.
func buildConfig(fs *pflag.FlagSet, f flags, positional []string) (*app.Config, error) {
	settings := &app.Settings{}
	if f.settings != "" {
		s, err := app.LoadSettings(f.settings)
		if err != nil {
			return nil, usageError("%s", err)
		}
		settings = s
	}

	var paths, options []string
	for _, arg := range positional {
		if varparsing.IsOption(arg) {
			options = append(options, arg)
			continue
		}
		paths = append(paths, arg)
	}
	if len(paths) == 0 {
		paths = settings.ConfigPaths
	}
	if len(options) == 0 {
		options = settings.Options
	}
	harness, err := varparsing.Parse(options)
	if err != nil {
		return nil, usageError("%s", err)
	}

	builtin := f.builtin
	if !fs.Changed("builtin") && settings.Builtin != nil {
		builtin = *settings.Builtin
	}

	cfg, err := app.NewConfig(app.Config{
		ConfigPaths:  paths,
		Builtin:      builtin,
		Harness:      harness,
		LogFormat:    strings.ToLower(pick(fs, "log-format", f.logFormat, settings.LogFormat)),
		LogLevel:     strings.ToLower(pick(fs, "log-level", f.logLevel, settings.LogLevel)),
		OutputFormat: strings.ToLower(pick(fs, "format", f.format, settings.Format)),
		ValidateOnly: f.validateOnly,
		Watch:        f.watch,
	})
	if err != nil {
		return nil, usageError("%s", err)
	}
	return cfg, nil
}

// pick returns the flag value when it was set explicitly, else the settings
// value when present, else the flag default.
func pick(fs *pflag.FlagSet, name, flagValue, settingsValue string) string {
	if fs.Changed(name) || settingsValue == "" {
		return flagValue
	}
	return settingsValue
}
