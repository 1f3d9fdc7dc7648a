package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/backmassage/mergetweets/internal/config"
	"github.com/backmassage/mergetweets/internal/csvio"
	"github.com/backmassage/mergetweets/internal/display"
	"github.com/backmassage/mergetweets/internal/table"
)

// Sentinel errors for runs that cannot produce output.
var (
	ErrNoCSVFiles   = errors.New("no CSV files found")
	ErrNoValidFiles = errors.New("no CSV file could be read")
)

// Logger is the minimal logging interface the pipeline needs. Defined here
// so tests can capture output without the console logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Job names the inputs and the destination of one run.
type Job struct {
	Pattern string // Glob of candidate input files.
	Output  string // Destination CSV path.
}

// Run executes discover → load → merge → write and returns the counters
// gathered on the way. Any returned error means no output was written;
// the caller reports it.
func Run(ctx context.Context, cfg *config.Config, job Job, log Logger) (RunStats, error) {
	stats := RunStats{OutputPath: job.Output}

	files, err := Discover(job.Pattern)
	if err != nil {
		return stats, err
	}
	stats.FilesFound = len(files)
	if len(files) == 0 {
		return stats, fmt.Errorf("%w matching %s", ErrNoCSVFiles, job.Pattern)
	}
	log.Info("Found %d CSV files:", len(files))
	for _, f := range files {
		log.Info("  - %s", filepath.Base(f))
	}

	rep, err := Load(ctx, files, log)
	if err != nil {
		return stats, err
	}
	stats.FilesLoaded = len(rep.Loaded)
	stats.FilesFailed = len(rep.Failures)
	if len(rep.Loaded) == 0 {
		return stats, fmt.Errorf("%w (%d tried)", ErrNoValidFiles, len(files))
	}

	merged, err := Merge(cfg, rep.Tables(), log, &stats)
	if err != nil {
		return stats, err
	}

	if cfg.DryRun {
		log.Success("[DRY] Would write %s rows to %s", display.FormatCount(merged.Len()), job.Output)
		return stats, nil
	}

	size, err := csvio.WriteFile(job.Output, merged)
	if err != nil {
		return stats, fmt.Errorf("write %s: %w", job.Output, err)
	}
	stats.OutputBytes = size
	log.Success("Merged into %s", job.Output)
	log.Info("File size: %s", display.FormatSize(size))
	return stats, nil
}

// Merge concatenates tables in order, drops duplicate IDs (first wins) and
// sorts newest first. A missing ID or posted-at column skips that step with
// a warning. Unparseable timestamps abort with a *table.TimestampError
// unless cfg.InvalidTimestamps is "last".
func Merge(cfg *config.Config, tables []*table.Table, log Logger, stats *RunStats) (*table.Table, error) {
	merged := table.Concat(tables...)
	stats.InputRows = merged.Len()
	log.Info("Rows after concatenation: %s", display.FormatCount(merged.Len()))
	log.Debug("Columns: %v", merged.Columns)

	if merged.HasColumn(cfg.IDColumn) {
		var removed int
		merged, removed = table.DedupBy(merged, cfg.IDColumn)
		stats.Deduplicated = true
		stats.Duplicates = removed
		log.Info("Removed %s duplicate rows", display.FormatCount(removed))
		log.Info("Rows after deduplication: %s", display.FormatCount(merged.Len()))
	} else {
		log.Warn("'%s' column not found; skipping deduplication", cfg.IDColumn)
	}

	if merged.HasColumn(cfg.TimestampColumn) {
		unparsedLast := cfg.InvalidTimestamps == config.TimestampsLast
		sorted, ss, err := table.SortByTime(merged, cfg.TimestampColumn, table.TimestampParser(cfg.Location()), unparsedLast)
		if err != nil {
			var tsErr *table.TimestampError
			if errors.As(err, &tsErr) && merged.HasColumn(cfg.IDColumn) {
				tsErr.ID = merged.Rows[tsErr.Row][cfg.IDColumn]
			}
			return nil, err
		}
		merged = sorted
		stats.Sorted = true
		stats.EmptyTimestamps = ss.Empty
		stats.UnparsedTimestamps = ss.Unparsed
		if ss.Empty > 0 {
			log.Debug("%d rows without '%s' placed last", ss.Empty, cfg.TimestampColumn)
		}
		if ss.Unparsed > 0 {
			log.Warn("%d rows with unparseable '%s' placed last", ss.Unparsed, cfg.TimestampColumn)
		}
		log.Info("Sorted by '%s' (newest first)", cfg.TimestampColumn)
	} else {
		log.Warn("'%s' column not found; skipping sort", cfg.TimestampColumn)
	}

	stats.OutputRows = merged.Len()
	return merged, nil
}
