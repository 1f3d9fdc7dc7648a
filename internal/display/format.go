// Package display formats console output: the banner and file sizes.
package display

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatBytes returns a human-readable IEC size (e.g. "1.5 KiB").
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatSize returns the exact byte count with thousands separators followed
// by the human-readable size, e.g. "12,345 bytes (12 KiB)".
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%s bytes (%s)", humanize.Comma(bytes), FormatBytes(bytes))
}

// FormatCount renders a row or file count with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
