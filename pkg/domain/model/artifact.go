package model

import (
	"path/filepath"
	"strings"
)

// Artifact is a file on local storage produced by a completed fetch.
type Artifact struct {
	Path   string
	Source *Resource

	// Reused marks a file that already existed at the destination; the
	// fetcher skipped the download and the caller decides whether to
	// re-verify it.
	Reused bool
}

// IsMetadata reports whether the artifact is a plaintext companion metadata
// file rather than a payload archive.
func (a *Artifact) IsMetadata() bool {
	return strings.EqualFold(filepath.Ext(a.Path), ".txt")
}
