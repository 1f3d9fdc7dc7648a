// Package config holds runtime configuration: defaults, the optional YAML
// config file, CLI flag binding, and validation. Defaults match the legacy
// merge script so a bare `mergetweets <folder>` behaves identically.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// --- Enum types for validated string fields ---

// TimestampPolicy selects how rows with an unparseable posted-at value are
// handled during the sort stage.
type TimestampPolicy string

const (
	TimestampsFail TimestampPolicy = "fail" // Abort the run (default).
	TimestampsLast TimestampPolicy = "last" // Sort after every parsed row.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by [LoadFile] and then by CLI flags before being passed (by
// pointer) to packages that need it.
type Config struct {
	// Paths (set from the positional arg and --output).
	InputDir   string `yaml:"-"`
	OutputPath string `yaml:"-"` // Empty: derived from the account id and date.

	// Discovery and naming.
	Pattern       string `yaml:"pattern"`        // Default: "*.csv".
	AccountMarker string `yaml:"account_marker"` // Default: "_tweets_".
	MergedPrefix  string `yaml:"merged_prefix"`  // Default: "merged_tweets".
	DateFormat    string `yaml:"date_format"`    // Go layout. Default: "2006-01-02".

	// Well-known columns.
	IDColumn          string          `yaml:"id_column"`          // Default: "ID".
	TimestampColumn   string          `yaml:"timestamp_column"`   // Default: "投稿日時".
	InvalidTimestamps TimestampPolicy `yaml:"invalid_timestamps"` // Default: "fail".
	Timezone          string          `yaml:"timezone"`           // Zone for naive timestamps. Default: "Local".

	// Behavior and display.
	DryRun    bool      `yaml:"-"`
	Verbose   bool      `yaml:"verbose"`
	ColorMode ColorMode `yaml:"color"`
	LogFile   string    `yaml:"log_file"`

	loc *time.Location
}

// DefaultConfig returns a Config with the legacy script's behavior.
func DefaultConfig() Config {
	return Config{
		Pattern:           "*.csv",
		AccountMarker:     "_tweets_",
		MergedPrefix:      "merged_tweets",
		DateFormat:        "2006-01-02",
		IDColumn:          "ID",
		TimestampColumn:   "投稿日時",
		InvalidTimestamps: TimestampsFail,
		Timezone:          "Local",
		ColorMode:         ColorAuto,
	}
}

// LoadFile overlays the YAML document at path onto cfg. Keys absent from the
// file keep their current values; unknown keys are rejected so typos surface.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// An empty document is a valid (no-op) config.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields, the non-empty string settings, and resolves
// the timezone. It does not touch the filesystem; see [CheckInputDir].
func (c *Config) Validate() error {
	switch c.InvalidTimestamps {
	case TimestampsFail, TimestampsLast:
		// valid
	default:
		return fmt.Errorf("invalid timestamp policy %q (use 'fail' or 'last')", c.InvalidTimestamps)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if strings.TrimSpace(c.Pattern) == "" {
		return errors.New("pattern must not be empty")
	}
	if c.AccountMarker == "" {
		return errors.New("account_marker must not be empty")
	}
	if c.MergedPrefix == "" {
		return errors.New("merged_prefix must not be empty")
	}
	if c.DateFormat == "" {
		return errors.New("date_format must not be empty")
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	c.loc = loc

	if c.InputDir == "" {
		return &UsageError{Msg: "missing folder argument"}
	}
	return nil
}

// Location returns the zone used for timestamps that carry no offset.
// Before [Config.Validate] succeeds it falls back to time.Local.
func (c *Config) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// CheckInputDir verifies that path exists and is a directory. Failures are
// returned as *UsageError so the caller prints usage alongside the message.
func CheckInputDir(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &UsageError{Msg: "folder not found: " + path}
		}
		return &UsageError{Msg: fmt.Sprintf("cannot access folder %s: %v", path, err)}
	}
	if !fi.IsDir() {
		return &UsageError{Msg: "path is not a folder: " + path}
	}
	return nil
}

// UsageError marks an error caused by invalid invocation. The entrypoint
// prints usage text after the message and exits non-zero.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }
