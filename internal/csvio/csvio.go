// Package csvio reads and writes tables as CSV files. Input may carry a
// UTF-8 byte-order mark; output always does, for spreadsheet tools that
// rely on it to detect the encoding.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/backmassage/mergetweets/internal/table"
)

// Sentinel errors for files that cannot become a table.
var (
	ErrEmptyFile   = errors.New("no columns to parse from file")
	ErrInvalidUTF8 = errors.New("file is not valid UTF-8")
)

// ReadFile parses the CSV file at path into a table. The first record is
// the header. Rows shorter than the header leave trailing columns absent;
// rows longer than the header are an error.
func ReadFile(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(data)
}

// Read parses CSV bytes; see [ReadFile].
func Read(data []byte) (*table.Table, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	r := csv.NewReader(transform.NewReader(bytes.NewReader(data), unicode.UTF8BOM.NewDecoder()))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	t := table.New(header...)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if len(rec) > len(header) {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(rec))
		}
		t.Append(rec...)
	}
	return t, nil
}

// Write serializes t as CSV to w: byte-order mark, header row, then one
// line per record. Absent values are written as empty fields.
func Write(w io.Writer, t *table.Table) error {
	enc := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(enc)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, r := range t.Rows {
		if err := cw.Write(t.Values(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return enc.Close()
}

// WriteFile writes t to path, replacing any existing file, and returns the
// size of the result as reported by the filesystem. A partially written
// file is removed on failure.
func WriteFile(path string, t *table.Table) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := Write(f, t); err != nil {
		f.Close()
		os.Remove(path)
		return 0, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return 0, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}
