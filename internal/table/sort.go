package table

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseFunc converts a posted-at cell into a point in time.
type ParseFunc func(string) (time.Time, error)

// ParseTimestamp parses the formats tweet exports use (RFC 3339 with or
// without fractional seconds, "2006-01-02 15:04:05", bare dates and the other
// layouts dateparse recognises). Values without an offset are read in loc.
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	return dateparse.ParseIn(strings.TrimSpace(value), loc)
}

// TimestampParser returns ParseTimestamp bound to loc.
func TimestampParser(loc *time.Location) ParseFunc {
	return func(s string) (time.Time, error) { return ParseTimestamp(s, loc) }
}

// TimestampError reports the first posted-at value that could not be parsed.
// Row is the zero-based position in the merged (deduplicated) table, not a
// line of any input file. ID, when set, is the record's ID cell.
type TimestampError struct {
	Column string
	Row    int
	ID     string
	Value  string
	Err    error
}

func (e *TimestampError) Error() string {
	where := fmt.Sprintf("merged row %d", e.Row+1)
	if e.ID != "" {
		where += fmt.Sprintf(" (ID %s)", e.ID)
	}
	return fmt.Sprintf("cannot parse %s %q in %s: %v", e.Column, e.Value, where, e.Err)
}

func (e *TimestampError) Unwrap() error { return e.Err }

// SortStats describes the rows that did not carry a usable timestamp.
type SortStats struct {
	Empty    int // Empty or absent values, sorted after every parsed row.
	Unparsed int // Non-empty values that failed to parse (only with unparsedLast).
}

type sortKey int

const (
	keyParsed sortKey = iota
	keyEmpty
	keyUnparsed
)

type keyed struct {
	rec  Record
	kind sortKey
	at   time.Time
}

// SortByTime orders rows by column, most recent first. The sort is stable,
// so equal timestamps keep their input order. Empty or absent values go
// after all parsed rows. A value that fails to parse aborts with a
// *TimestampError unless unparsedLast is set, in which case such rows are
// placed at the very end in input order. If the column is not in the schema
// the input is returned as is.
func SortByTime(t *Table, column string, parse ParseFunc, unparsedLast bool) (*Table, SortStats, error) {
	var stats SortStats
	if !t.HasColumn(column) {
		return t, stats, nil
	}

	rows := make([]keyed, len(t.Rows))
	for i, r := range t.Rows {
		rows[i].rec = r
		v := strings.TrimSpace(r[column])
		if v == "" {
			rows[i].kind = keyEmpty
			stats.Empty++
			continue
		}
		at, err := parse(v)
		if err != nil {
			if !unparsedLast {
				return nil, stats, &TimestampError{Column: column, Row: i, Value: v, Err: err}
			}
			rows[i].kind = keyUnparsed
			stats.Unparsed++
			continue
		}
		rows[i].at = at
	}

	slices.SortStableFunc(rows, func(a, b keyed) int {
		if a.kind != b.kind {
			return int(a.kind) - int(b.kind)
		}
		if a.kind != keyParsed {
			return 0
		}
		// Descending.
		return b.at.Compare(a.at)
	})

	out := &Table{Columns: t.Columns, Rows: make([]Record, len(rows))}
	for i, k := range rows {
		out.Rows[i] = k.rec
	}
	return out, stats, nil
}
