package pipeline

// RunStats tracks file and row counters across a run.
type RunStats struct {
	FilesFound  int
	FilesLoaded int
	FilesFailed int

	InputRows  int // Rows after concatenation.
	Duplicates int // Rows removed by deduplication.
	OutputRows int

	Deduplicated bool // False when the ID column was missing.
	Sorted       bool // False when the posted-at column was missing.

	EmptyTimestamps    int
	UnparsedTimestamps int

	OutputPath  string
	OutputBytes int64 // Zero on dry runs.
}
