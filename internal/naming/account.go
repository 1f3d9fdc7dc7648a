package naming

import (
	"path/filepath"
	"sort"
	"strings"
)

// ExtractAccountID scans paths for the first basename containing marker
// (e.g. "_tweets_") and returns the text before its first occurrence.
// Candidates are examined in lexicographic order of basename, making the
// result independent of directory enumeration order. An empty prefix does
// not count as a match.
//
// Previous merges never outrank a raw export. Basenames starting with
// mergedPrefix carry no account and are skipped. An account's own merge
// ("alice_merged_tweets_...") is consulted only when no raw export names
// an account, and yields the text before "_" + mergedPrefix + "_".
func ExtractAccountID(paths []string, marker, mergedPrefix string) (string, bool) {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	sort.Strings(names)

	mergedInfix := "_" + mergedPrefix + "_"
	var merges []string
	for _, name := range names {
		if strings.HasPrefix(name, mergedPrefix) {
			continue
		}
		if strings.Contains(name, mergedInfix) {
			merges = append(merges, name)
			continue
		}
		if id, ok := cutAccount(name, marker); ok {
			return id, true
		}
	}
	for _, name := range merges {
		if id, ok := cutAccount(name, mergedInfix); ok {
			return id, true
		}
	}
	return "", false
}

func cutAccount(name, sep string) (string, bool) {
	id, _, found := strings.Cut(name, sep)
	return id, found && id != ""
}
