package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the optional YAML settings file. Every field is a default that
// command-line flags override.
type Settings struct {
	ConfigPaths []string `yaml:"config_paths"`
	Builtin     *bool    `yaml:"builtin"`
	LogLevel    string   `yaml:"log_level"`
	LogFormat   string   `yaml:"log_format"`
	Format      string   `yaml:"format"`
	// Options are harness options in key=value form.
	Options []string `yaml:"options"`
}

// LoadSettings reads a settings file. Unknown keys are rejected.
func LoadSettings(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening settings: %w", err)
	}
	defer f.Close()

	s, err := ReadSettings(f)
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}
	return s, nil
}

// ReadSettings decodes settings from r. An empty document yields empty
// settings.
func ReadSettings(r io.Reader) (*Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &s, nil
}
