package mtools

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/dostools/fdget/pkg/domain/types"
)

// DefaultBinary is the mtools file-copy utility used to pull files off DOS
// disk images.
const DefaultBinary = "mcopy"

// Copier drives the external mcopy binary. The contract: copy every file
// from the root of a DOS disk image into a local directory, recursively,
// preserving modification times, never overwriting existing files, with
// DOS 8.3 names forced to lowercase.
type Copier struct {
	binary string
}

// Option is a functional option for Copier configuration
type Option func(*Copier)

// WithBinary overrides the binary name looked up on PATH.
func WithBinary(name string) Option {
	return func(c *Copier) {
		c.binary = name
	}
}

// New creates a Copier for the mcopy binary.
func New(opts ...Option) *Copier {
	c := &Copier{
		binary: DefaultBinary,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Available reports whether the external binary can be found on the search
// path. It is called before any network activity so a missing tool aborts
// the run up front.
func (c *Copier) Available() error {
	if _, err := exec.LookPath(c.binary); err != nil {
		return goerr.Wrap(err, "required disk-image utility not found on PATH, install mtools",
			goerr.V("binary", c.binary),
			goerr.T(types.ErrTagMissingDependency))
	}

	return nil
}

// CopyAll copies every file from the image root into destDir. The "::*"
// wildcard addresses the whole image; MTOOLS_LOWER_CASE makes mcopy write
// 8.3 names in lowercase.
func (c *Copier) CopyAll(ctx context.Context, imagePath, destDir string) error {
	logger := ctxlog.From(ctx)

	args := []string{"-n", "-m", "-s", "-i", imagePath, "::*", destDir}

	logger.Debug("Copying files off disk image",
		slog.String("binary", c.binary),
		slog.String("image", imagePath),
		slog.String("dest", destDir),
	)

	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Env = append(os.Environ(), "MTOOLS_LOWER_CASE=1")

	output, err := cmd.CombinedOutput()
	if err != nil {
		return goerr.Wrap(err, "disk-image copy failed",
			goerr.V("binary", c.binary),
			goerr.V("image", imagePath),
			goerr.V("output", strings.TrimSpace(string(output))))
	}

	return nil
}
