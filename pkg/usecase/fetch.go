package usecase

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/dostools/fdget/pkg/domain/model"
	"github.com/dostools/fdget/pkg/domain/types"
	"github.com/dostools/fdget/pkg/utils/fsutil"
)

// systemMarker names the file whose presence identifies a destination as a
// flavor install rather than a custom disk set.
const systemMarker = "kernel.sys"

// FetchSet expands seedURL into its full disk set, downloads every member,
// verifies them, and merges each into dest. sums, when given, pair with the
// expanded set in order and must cover it exactly. A destination that is
// already populated is re-verified or reused instead of overwritten.
func (uc *UseCase) FetchSet(ctx context.Context, seedURL, dest string, sums []string) error {
	// The external disk-image tool is required before any network activity.
	if err := uc.copier.Available(); err != nil {
		return err
	}

	seed, err := model.ParseResource(seedURL)
	if err != nil {
		return err
	}

	set, err := model.ExpandDiskSet(seed)
	if err != nil {
		return err
	}

	if len(sums) > 0 && len(sums) != len(set) {
		return goerr.New("digest count does not match the disk set",
			goerr.V("digests", len(sums)),
			goerr.V("disks", len(set)))
	}

	runID := uuid.NewString()
	logger := ctxlog.From(ctx).With(slog.String("run_id", runID))
	ctx = ctxlog.With(ctx, logger)

	logger.Info("Fetching disk set",
		slog.String("seed", seed.Filename),
		slog.Int("disks", len(set)),
		slog.String("dest", dest),
	)

	empty, err := fsutil.IsDirEmpty(dest)
	if err != nil {
		return err
	}
	if !empty {
		return uc.reuseExisting(ctx, dest, set, sums)
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return goerr.Wrap(err, "failed to create destination directory", goerr.V("dest", dest))
	}

	staging, cleanup, err := uc.stage(ctx, runID)
	if err != nil {
		return err
	}
	defer cleanup()

	// Phase one: fetch and verify every member into staging.
	artifacts := make([]*model.Artifact, 0, len(set))
	for i, res := range set {
		artifact, err := uc.fetcher.Fetch(ctx, res, staging)
		if err != nil {
			return err
		}

		if !artifact.IsMetadata() {
			expected := ""
			if len(sums) > 0 {
				expected = sums[i]
			}
			if err := uc.verifyArtifact(ctx, artifact, expected); err != nil {
				return err
			}
		}
		artifacts = append(artifacts, artifact)
	}

	// Phase two: merge each member into the destination. Metadata
	// companions never leave staging.
	merged := 0
	for _, artifact := range artifacts {
		if artifact.IsMetadata() {
			continue
		}
		if err := uc.archive.Materialize(ctx, artifact, dest); err != nil {
			return err
		}
		merged++
	}

	logger.Info("Disk set assembled",
		slog.Int("disks", merged),
		slog.String("dest", dest),
	)

	return nil
}

// reuseExisting handles an already-populated destination. With
// caller-supplied digests and no system install marker, the existing files
// are re-verified by name against the expanded set; otherwise the file set
// is reused untouched with a warning.
func (uc *UseCase) reuseExisting(ctx context.Context, dest string, set []*model.Resource, sums []string) error {
	logger := ctxlog.From(ctx)

	if len(sums) > 0 && !fsutil.Exists(filepath.Join(dest, systemMarker)) {
		for i, res := range set {
			path := filepath.Join(dest, res.Filename)
			if !fsutil.Exists(path) {
				return goerr.New("expected file missing from destination",
					goerr.V("file", res.Filename),
					goerr.V("dest", dest),
					goerr.T(types.ErrTagIntegrity))
			}

			artifact := &model.Artifact{Path: path, Source: res, Reused: true}
			if err := uc.verifyArtifact(ctx, artifact, sums[i]); err != nil {
				return err
			}
		}

		logger.Info("Existing files re-verified",
			slog.Int("files", len(set)),
			slog.String("dest", dest),
		)
		return nil
	}

	logger.Warn("Destination already populated, reusing existing files",
		slog.String("dest", dest),
	)

	return nil
}
