package model

import (
	"fmt"
	"strings"
)

// DownloadTask represents a single entry from the URL manifest.
//
// Name is the output filename stem, without extension: the external fetch
// tool appends the extension of whatever container it produces. SourceURL
// is the stream URL the task downloads from.
//
// A task is read-only after parsing. The manifest parser guarantees both
// fields are populated; Validate re-checks the invariants for tasks built
// by other callers (tests, future front-ends).
type DownloadTask struct {
	// Name is the filesystem-safe output filename stem.
	// Must be non-empty and contain no whitespace or path separators.
	Name string `json:"name"`

	// SourceURL is the absolute URL of the stream to fetch.
	SourceURL string `json:"source_url"`
}

// Validate checks the task invariants.
func (t DownloadTask) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task has empty name")
	}
	if strings.ContainsAny(t.Name, " \t") {
		return fmt.Errorf("task name %q contains whitespace", t.Name)
	}
	if strings.ContainsAny(t.Name, `/\`) {
		return fmt.Errorf("task name %q contains a path separator", t.Name)
	}
	if t.SourceURL == "" {
		return fmt.Errorf("task %q has empty URL", t.Name)
	}
	return nil
}
