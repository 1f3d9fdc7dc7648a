package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Discover expands pattern (e.g. "<folder>/*.csv") into the regular files
// it matches, sorted lexicographically so display and concatenation order
// are deterministic. No match is not an error.
func Discover(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	files := matches[:0]
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}
