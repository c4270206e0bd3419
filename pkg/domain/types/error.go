package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures so the CLI can pick diagnostics and the
// orchestrator can tell batch-fatal conditions from per-package ones.
var (
	// ErrTagIntegrity: checksum mismatch. Fatal; the offending file is left
	// in place for inspection.
	ErrTagIntegrity = goerr.NewTag("integrity")

	// ErrTagMissingDependency: a required external tool is absent from PATH.
	ErrTagMissingDependency = goerr.NewTag("missing_dependency")

	// ErrTagMalformedFilename: a filename claims disk-set membership but
	// matches no recognized numbering pattern.
	ErrTagMalformedFilename = goerr.NewTag("malformed_filename")

	// ErrTagNotFound: the remote answered 404. Consumed by the repository
	// section fallback, otherwise degraded to a per-package warning.
	ErrTagNotFound = goerr.NewTag("not_found")

	// ErrTagPreexistingDestination: a flavor install requires an empty
	// destination but found one already populated.
	ErrTagPreexistingDestination = goerr.NewTag("preexisting_destination")
)
