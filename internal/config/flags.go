package config

// This file implements CLI flag binding on top of cobra's pflag set.
// Flag values are captured in [Flags] and applied after the optional config
// file is loaded, so precedence is: defaults < config file < flags.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds raw flag values until [Resolve] applies them to a Config.
type Flags struct {
	ConfigFile        string
	Output            string
	DryRun            bool
	Verbose           bool
	ForceColor        bool
	NoColor           bool
	LogFile           string
	InvalidTimestamps string
}

// Register defines every flag on fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigFile, "config", "", "YAML config file")
	fs.StringVarP(&f.Output, "output", "o", "", "Output CSV path (default: derived from account id and date)")
	fs.BoolVarP(&f.DryRun, "dry-run", "d", false, "Merge and report only; do not write the output file")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVar(&f.ForceColor, "color", false, "Force colored logs")
	fs.BoolVar(&f.NoColor, "no-color", false, "Disable colored logs")
	fs.StringVarP(&f.LogFile, "log", "l", "", "Append structured logs to file")
	fs.StringVar(&f.InvalidTimestamps, "invalid-timestamps", "", "Unparseable posted-at values: fail | last (default: fail)")
}

// apply copies flags the user actually set into cfg, leaving config-file
// and default values intact otherwise.
func (f *Flags) apply(fs *pflag.FlagSet, cfg *Config) {
	if fs.Changed("output") {
		cfg.OutputPath = f.Output
	}
	if fs.Changed("dry-run") {
		cfg.DryRun = f.DryRun
	}
	if fs.Changed("verbose") {
		cfg.Verbose = f.Verbose
	}
	if fs.Changed("log") {
		cfg.LogFile = f.LogFile
	}
	if fs.Changed("invalid-timestamps") {
		cfg.InvalidTimestamps = TimestampPolicy(strings.ToLower(f.InvalidTimestamps))
	}
	if f.NoColor {
		cfg.ColorMode = ColorNever
	} else if f.ForceColor {
		cfg.ColorMode = ColorAlways
	}
}

// Resolve builds the effective Config: defaults, then the --config file,
// then changed flags, then the positional folder argument. The result is
// validated; filesystem checks are left to [CheckInputDir].
func Resolve(fs *pflag.FlagSet, f *Flags, args []string) (Config, error) {
	cfg := DefaultConfig()
	if f.ConfigFile != "" {
		if err := LoadFile(f.ConfigFile, &cfg); err != nil {
			return cfg, err
		}
	}
	f.apply(fs, &cfg)

	if err := parsePositionalArgs(args, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// parsePositionalArgs sets InputDir from the single folder argument.
func parsePositionalArgs(args []string, cfg *Config) error {
	switch len(args) {
	case 0:
		return &UsageError{Msg: "missing folder argument"}
	case 1:
		cfg.InputDir = NormalizeDirArg(args[0])
		if cfg.InputDir == "" {
			return &UsageError{Msg: "folder argument must not be empty"}
		}
		return nil
	default:
		return &UsageError{Msg: fmt.Sprintf("expected exactly one folder argument, got %d", len(args))}
	}
}
