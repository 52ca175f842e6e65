// Package config loads zfiscal's optional YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zarlcorp/zfiscal/internal/fiscalcode"
	"github.com/zarlcorp/zfiscal/internal/identity"
	"github.com/zarlcorp/zfiscal/internal/places"
)

// FileName is the config file looked up inside Dir().
const FileName = "config.yaml"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds data-source paths, compatibility switches and the age
// range of generated identities.
type Config struct {
	NamesDir   string       `yaml:"names_dir,omitempty"`
	PlacesFile string       `yaml:"places_file,omitempty"`
	Legacy     LegacyConfig `yaml:"legacy,omitempty"`
	Age        AgeConfig    `yaml:"age,omitempty"`

	// environment overrides applied by Load; Write persists the file values
	namesDirEnv   envOverride
	placesFileEnv envOverride
}

// envOverride records a value replaced from the environment.
type envOverride struct {
	active bool
	env    string
	file   string
}

func override(v *string, key string) envOverride {
	env := os.Getenv(key)
	if env == "" {
		return envOverride{}
	}
	o := envOverride{active: true, env: env, file: *v}
	*v = env
	return o
}

// persisted returns the value to write back for v.
func (o envOverride) persisted(v string) string {
	if o.active && v == o.env {
		return o.file
	}
	return v
}

// LegacyConfig reproduces defects of the historical generator scripts.
type LegacyConfig struct {
	SkipPadding bool `yaml:"skip_padding,omitempty"`
	VowelStride int  `yaml:"vowel_stride,omitempty"`
}

// AgeConfig bounds generated birth dates in years.
type AgeConfig struct {
	Min int `yaml:"min,omitempty"`
	Max int `yaml:"max,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Age: AgeConfig{
			Min: identity.DefaultMinAge,
			Max: identity.DefaultMaxAge,
		},
	}
}

// Dir returns the config directory for zfiscal.
func Dir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "zfiscal")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zfiscal"
	}
	return filepath.Join(home, ".config", "zfiscal")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), FileName)
}

// Load reads the config at path. A missing file yields the defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("no config file, using defaults", "path", path)
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		slog.Debug("loaded config", "path", path)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.placesFileEnv = override(&c.PlacesFile, "ZFISCAL_PLACES_FILE")
	c.namesDirEnv = override(&c.NamesDir, "ZFISCAL_NAMES_DIR")
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Age.Min < 0 || c.Age.Max < c.Age.Min {
		return fmt.Errorf("%w: age range %d-%d", ErrInvalid, c.Age.Min, c.Age.Max)
	}
	if c.Legacy.VowelStride < 0 {
		return fmt.Errorf("%w: negative vowel_stride", ErrInvalid)
	}
	return nil
}

// EncoderOptions converts the legacy switches to encoder options.
func (c *Config) EncoderOptions() fiscalcode.Options {
	return fiscalcode.Options{
		SkipPadding: c.Legacy.SkipPadding,
		VowelStride: c.Legacy.VowelStride,
	}
}

// Places returns the configured place table, or the embedded one.
func (c *Config) Places() (*places.Table, error) {
	if c.PlacesFile == "" {
		return places.Default(), nil
	}
	return places.LoadFile(c.PlacesFile)
}

// Source returns the configured identity source.
func (c *Config) Source() (identity.Source, error) {
	tbl, err := c.Places()
	if err != nil {
		return nil, err
	}
	if c.NamesDir == "" {
		l := identity.Builtin()
		l.Table = tbl
		return l, nil
	}
	return identity.LoadDir(c.NamesDir, tbl)
}

// Generator builds an identity generator from the config.
func (c *Config) Generator() (*identity.Generator, error) {
	src, err := c.Source()
	if err != nil {
		return nil, err
	}
	if err := identity.CheckSource(src); err != nil {
		return nil, err
	}
	return identity.New(
		identity.WithSource(src),
		identity.WithEncoder(fiscalcode.New(c.EncoderOptions())),
		identity.WithAgeRange(c.Age.Min, c.Age.Max),
	), nil
}

// Write saves the config as YAML, creating parent directories. Paths taken
// from the environment by Load are written back with their file values.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	out := *c
	out.NamesDir = c.namesDirEnv.persisted(c.NamesDir)
	out.PlacesFile = c.placesFileEnv.persisted(c.PlacesFile)

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
