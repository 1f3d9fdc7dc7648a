// Command mergetweets is the CLI entrypoint for the tweet export merger.
//
// It merges every CSV export in a folder into one deduplicated file sorted
// newest first, named after the account found in the export filenames.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/backmassage/mergetweets/internal/config"
	"github.com/backmassage/mergetweets/internal/display"
	"github.com/backmassage/mergetweets/internal/logging"
	"github.com/backmassage/mergetweets/internal/naming"
	"github.com/backmassage/mergetweets/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// now is the clock used for the output file date.
var now = time.Now

// exitCode is returned from RunE once the failure has already been logged.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var code exitCode
	if errors.As(err, &code) {
		return int(code)
	}
	fmt.Fprintf(stderr, "mergetweets: %v\n", err)
	var usage *config.UsageError
	if errors.As(err, &usage) {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return 1
}

func newRootCmd() *cobra.Command {
	var flags config.Flags
	cmd := &cobra.Command{
		Use:   "mergetweets [flags] <folder>",
		Short: "Merge tweet CSV exports into one deduplicated file",
		Long: `Merges every *.csv file in <folder> into a single CSV.

Rows are deduplicated by the ID column (the first file wins) and sorted by
the 投稿日時 column, newest first. The result is written into <folder> as
{account}_merged_tweets_YYYY-MM-DD.csv, where {account} comes from export
files named {account}_tweets_YYYY-MM-DD.csv (merged_tweets_YYYY-MM-DD.csv
when no account can be found).`,
		Example: `  mergetweets .
  mergetweets ~/Documents/tweets
  mergetweets --dry-run --invalid-timestamps last ./exports`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(cmd.Flags(), &flags, args)
			if err != nil {
				return err
			}
			if err := config.CheckInputDir(cfg.InputDir); err != nil {
				return err
			}
			return merge(cmd.Context(), &cfg)
		},
	}
	flags.Register(cmd.Flags())
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &config.UsageError{Msg: err.Error()}
	})
	return cmd
}

// merge runs the pipeline for a validated config. All output goes through
// the logger from here on.
func merge(parent context.Context, cfg *config.Config) error {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner(color.Output)

	pattern := filepath.Join(cfg.InputDir, cfg.Pattern)
	output := cfg.OutputPath
	if output == "" {
		candidates, err := pipeline.Discover(pattern)
		if err != nil {
			log.Error("%v", err)
			return exitCode(1)
		}
		account, _ := naming.ExtractAccountID(candidates, cfg.AccountMarker, cfg.MergedPrefix)
		output = naming.OutputPath(cfg.InputDir, account, cfg.MergedPrefix, cfg.DateFormat, now())
	}

	abs, err := filepath.Abs(cfg.InputDir)
	if err != nil {
		abs = cfg.InputDir
	}
	log.Info("=== mergetweets v%s ===", version)
	log.Info("Folder: %s", abs)
	log.Info("Output: %s", output)
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := pipeline.Run(ctx, cfg, pipeline.Job{Pattern: pattern, Output: output}, log)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Interrupted; nothing was written")
		} else {
			log.Error("%v", err)
		}
		return exitCode(1)
	}

	log.Info("Files: %d loaded, %d skipped", stats.FilesLoaded, stats.FilesFailed)
	log.Info("Rows: %s in, %s out", display.FormatCount(stats.InputRows), display.FormatCount(stats.OutputRows))
	return nil
}
