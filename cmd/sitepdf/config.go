package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fwojciec/sitepdf"
	"gopkg.in/yaml.v3"
)

// Config holds settings read from the YAML config file. Command-line flags
// override individual fields.
type Config struct {
	MaxPages          int           `yaml:"max_pages"`
	SameOriginOnly    bool          `yaml:"same_origin_only"`
	PathPrefixOnly    bool          `yaml:"path_prefix_only"`
	PageFormat        string        `yaml:"page_format"`
	Scale             float64       `yaml:"scale"`
	Include           []string      `yaml:"include"`
	Exclude           []string      `yaml:"exclude"`
	RelayURL          string        `yaml:"relay_url"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Concurrency       int           `yaml:"concurrency"`
	UserAgent         string        `yaml:"user_agent"`
	OutputDir         string        `yaml:"output_dir"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		MaxPages:          sitepdf.DefaultMaxPages,
		SameOriginOnly:    true,
		PageFormat:        string(sitepdf.PageFormatA4),
		Scale:             sitepdf.DefaultScale,
		Timeout:           10 * time.Second,
		RequestsPerSecond: 2,
		Concurrency:       2,
		OutputDir:         ".",
	}
}

// LoadConfig reads path over the defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer fh.Close()
	return ReadConfig(fh)
}

// ReadConfig decodes YAML from r over the defaults.
func ReadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, sitepdf.Errorf(sitepdf.EINVALID, "decode config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the fields the CLI relies on.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return sitepdf.Errorf(sitepdf.EINVALID, "timeout must not be negative")
	}
	if c.Concurrency < 0 {
		return sitepdf.Errorf(sitepdf.EINVALID, "concurrency must not be negative")
	}
	if _, err := sitepdf.ParsePageFormat(c.PageFormat); err != nil {
		return err
	}
	_, err := c.Options()
	return err
}

// Options converts the config into run options.
func (c Config) Options() (sitepdf.Options, error) {
	format, err := sitepdf.ParsePageFormat(c.PageFormat)
	if err != nil {
		return sitepdf.Options{}, err
	}
	filter, err := sitepdf.NewURLFilter(c.Include, c.Exclude)
	if err != nil {
		return sitepdf.Options{}, err
	}

	opts := sitepdf.DefaultOptions()
	opts.MaxPages = c.MaxPages
	opts.SameOriginOnly = c.SameOriginOnly
	opts.PathPrefixOnly = c.PathPrefixOnly
	opts.PageFormat = format
	opts.Scale = c.Scale
	if filter != nil {
		opts.Filter = filter.Match
	}
	if err := opts.Validate(); err != nil {
		return sitepdf.Options{}, err
	}
	return opts, nil
}
