package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"padgrid/errs"
	"padgrid/layout"
	"padgrid/midi"
	"padgrid/theory"
)

// ErrConfiguration wraps every problem found in a config file, and every
// key or layout error the file leads to.
var ErrConfiguration = errs.ErrConfiguration

// Config is read once at startup and never written back.
type Config struct {
	DeviceFilter     string        `yaml:"deviceFilter"`
	OutputPort       string        `yaml:"outputPort"`
	VirtualOutput    bool          `yaml:"virtualOutput"`
	InputChannel     uint8         `yaml:"inputChannel"`
	OutputChannel    uint8         `yaml:"outputChannel"`
	Tonic            string        `yaml:"tonic"`
	Mode             int           `yaml:"mode"`
	Scale            string        `yaml:"scale"`
	NoteLayout       string        `yaml:"noteLayout"`
	HandshakeTimeout time.Duration `yaml:"handshakeTimeout"`
	HandshakeRetries int           `yaml:"handshakeRetries"`
	LogFile          string        `yaml:"logFile,omitempty"`
	LogLevel         string        `yaml:"logLevel,omitempty"`
	Palette          string        `yaml:"palette,omitempty"` // GIMP .gpl file for the monitor

	// NoteLayouts adds named layouts: 4 rows of 8 [degree, octave] pairs.
	NoteLayouts map[string][][][2]int `yaml:"noteLayouts,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DeviceFilter:     midi.DefaultFilter,
		OutputPort:       "padgrid_out",
		VirtualOutput:    true,
		InputChannel:     1,
		OutputChannel:    1,
		Tonic:            "C",
		Mode:             1,
		Scale:            "nat",
		NoteLayout:       layout.Lead,
		HandshakeTimeout: 2 * time.Second,
		HandshakeRetries: 2,
		LogLevel:         "info",
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "padgrid"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config at path, or the default location when path is
// empty. A missing file yields the defaults; fields absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfiguration, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and that the key and note layout resolve.
func (c *Config) Validate() error {
	if c.InputChannel > 15 {
		return fmt.Errorf("%w: inputChannel %d not in 0-15", ErrConfiguration, c.InputChannel)
	}
	if c.OutputChannel > 15 {
		return fmt.Errorf("%w: outputChannel %d not in 0-15", ErrConfiguration, c.OutputChannel)
	}
	if c.HandshakeTimeout <= 0 {
		return fmt.Errorf("%w: handshakeTimeout must be positive", ErrConfiguration)
	}
	if c.HandshakeRetries < 0 {
		return fmt.Errorf("%w: handshakeRetries must not be negative", ErrConfiguration)
	}
	if c.OutputPort == "" {
		return fmt.Errorf("%w: outputPort is empty", ErrConfiguration)
	}
	if _, err := c.Key(); err != nil {
		return err
	}
	reg, err := c.Registry()
	if err != nil {
		return err
	}
	if !reg.HasNotes(c.NoteLayout) {
		return fmt.Errorf("%w: noteLayout %q", layout.ErrUnknownLayout, c.NoteLayout)
	}
	return nil
}

// Key parses tonic, mode and scale.
func (c *Config) Key() (theory.Key, error) {
	tonic, err := theory.ParsePitchClass(c.Tonic)
	if err != nil {
		return theory.Key{}, err
	}
	scale, err := theory.ParseScaleType(c.Scale)
	if err != nil {
		return theory.Key{}, err
	}
	k, err := theory.NewKey(tonic, theory.Mode(c.Mode), scale)
	if err != nil {
		return theory.Key{}, err
	}
	return k, nil
}

// Registry returns the built-in layouts plus the configured note layouts.
func (c *Config) Registry() (*layout.Registry, error) {
	reg := layout.Builtin()
	for name, rows := range c.NoteLayouts {
		assign := make([][]layout.NoteAssignment, len(rows))
		for r, row := range rows {
			assign[r] = make([]layout.NoteAssignment, len(row))
			for col, pair := range row {
				assign[r][col] = layout.NoteAssignment{Degree: pair[0], Octave: pair[1]}
			}
		}
		if err := reg.RegisterNotes(name, assign); err != nil {
			return nil, fmt.Errorf("noteLayouts.%s: %w", name, err)
		}
	}
	return reg, nil
}
