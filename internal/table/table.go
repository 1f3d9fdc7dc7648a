// Package table holds the in-memory Record Set and the merge stage
// operations: concatenation, first-wins deduplication, and the stable
// descending timestamp sort.
package table

// Record is one row keyed by column name. A column missing from the map is
// absent for that record, which happens when input schemas differ.
type Record map[string]string

// Table is an ordered Record Set with an ordered column list. Columns
// determine the header and field order on output.
type Table struct {
	Columns []string
	Rows    []Record
}

// New returns an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// HasColumn reports whether name is part of the schema.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append adds a row built from positional values. Values beyond the
// schema are ignored; missing trailing values leave the column absent.
func (t *Table) Append(values ...string) {
	r := make(Record, len(t.Columns))
	for i, c := range t.Columns {
		if i < len(values) {
			r[c] = values[i]
		}
	}
	t.Rows = append(t.Rows, r)
}

// Values returns the row's fields in column order; absent columns yield "".
func (t *Table) Values(r Record) []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = r[c]
	}
	return out
}

// Concat appends the rows of every set in argument order, preserving each
// set's internal order. The resulting schema is the union of columns in
// order of first appearance: the first set's columns first, then columns
// introduced by later sets in the order they are met. Rows are shared, not
// copied.
func Concat(sets ...*Table) *Table {
	out := &Table{}
	seen := make(map[string]bool)
	total := 0
	for _, s := range sets {
		if s == nil {
			continue
		}
		for _, c := range s.Columns {
			if !seen[c] {
				seen[c] = true
				out.Columns = append(out.Columns, c)
			}
		}
		total += len(s.Rows)
	}
	out.Rows = make([]Record, 0, total)
	for _, s := range sets {
		if s == nil {
			continue
		}
		out.Rows = append(out.Rows, s.Rows...)
	}
	return out
}

// DedupBy keeps the first row for each distinct non-empty value of column
// and drops every later row sharing it. Rows where the column is empty or
// absent are always kept. It returns a new table and the number of rows
// removed. If the column is not in the schema the input is returned as is.
func DedupBy(t *Table, column string) (*Table, int) {
	if !t.HasColumn(column) {
		return t, 0
	}
	out := &Table{Columns: t.Columns, Rows: make([]Record, 0, len(t.Rows))}
	seen := make(map[string]struct{}, len(t.Rows))
	for _, r := range t.Rows {
		key := r[column]
		if key != "" {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out.Rows = append(out.Rows, r)
	}
	return out, len(t.Rows) - len(out.Rows)
}
