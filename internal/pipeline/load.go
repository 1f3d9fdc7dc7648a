package pipeline

import (
	"context"
	"path/filepath"

	"github.com/backmassage/mergetweets/internal/csvio"
	"github.com/backmassage/mergetweets/internal/display"
	"github.com/backmassage/mergetweets/internal/table"
)

// LoadResult is the outcome of reading one file: a table on success,
// otherwise the reason it was skipped.
type LoadResult struct {
	Path  string
	Table *table.Table
	Err   error
}

// OK reports whether the file loaded.
func (r LoadResult) OK() bool { return r.Err == nil }

// LoadReport splits per-file results into successes (in input order) and
// failures.
type LoadReport struct {
	Loaded   []LoadResult
	Failures []LoadResult
}

// Tables returns the loaded tables in input order.
func (r LoadReport) Tables() []*table.Table {
	out := make([]*table.Table, len(r.Loaded))
	for i, l := range r.Loaded {
		out[i] = l.Table
	}
	return out
}

// LoadFile reads one CSV file. It never panics on bad input; every problem
// comes back in the result.
func LoadFile(path string) LoadResult {
	t, err := csvio.ReadFile(path)
	return LoadResult{Path: path, Table: t, Err: err}
}

// Load reads every path in order. A failing file is logged and skipped;
// it never stops the loop. The context is checked between files.
func Load(ctx context.Context, paths []string, log Logger) (LoadReport, error) {
	var rep LoadReport
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		res := LoadFile(p)
		if !res.OK() {
			log.Error("Failed to read %s: %v", filepath.Base(p), res.Err)
			rep.Failures = append(rep.Failures, res)
			continue
		}
		log.Info("%s: %s rows", filepath.Base(p), display.FormatCount(res.Table.Len()))
		rep.Loaded = append(rep.Loaded, res)
	}
	return rep, nil
}
