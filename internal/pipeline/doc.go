// Package pipeline runs the merge as four sequential stages over one
// in-memory Record Set: discover the inputs matching a glob, load each CSV
// (skipping files that fail), merge with first-wins deduplication and a
// stable newest-first sort, then write the result.
package pipeline
