package usecase

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/dostools/fdget/pkg/domain/model"
	"github.com/dostools/fdget/pkg/domain/types"
	"github.com/dostools/fdget/pkg/utils/fsutil"
)

// InstallFlavor downloads every package of a known distribution flavor and
// assembles the result in dest. The destination must not contain an
// existing install; packages absent from the release are skipped with a
// warning.
func (uc *UseCase) InstallFlavor(ctx context.Context, flavorID, dest string) error {
	// The external disk-image tool is required before any network activity.
	if err := uc.copier.Available(); err != nil {
		return err
	}

	flavor, ok := uc.catalog.Flavor(flavorID)
	if !ok {
		return goerr.New("unknown flavor",
			goerr.V("flavor", flavorID),
			goerr.V("known", uc.catalog.IDs()))
	}

	runID := uuid.NewString()
	logger := ctxlog.From(ctx).With(slog.String("run_id", runID))
	ctx = ctxlog.With(ctx, logger)

	logger.Info("Installing flavor",
		slog.String("flavor", flavorID),
		slog.String("name", flavor.Name),
		slog.String("dest", dest),
	)

	empty, err := fsutil.IsDirEmpty(dest)
	if err != nil {
		return err
	}
	if !empty {
		return goerr.New("destination already populated, choose another directory",
			goerr.V("dest", dest),
			goerr.T(types.ErrTagPreexistingDestination))
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return goerr.Wrap(err, "failed to create destination directory", goerr.V("dest", dest))
	}

	staging, cleanup, err := uc.stage(ctx, runID)
	if err != nil {
		return err
	}
	defer cleanup()

	// Phase one: fetch and verify every package into staging.
	var artifacts []*model.Artifact
	for _, pkg := range flavor.Base {
		artifact, err := uc.fetchPackage(ctx, flavor, model.SectionBase, pkg, staging)
		if err != nil {
			if goerr.HasTag(err, types.ErrTagNotFound) {
				logger.Warn("Package not found in this release, skipping",
					slog.String("package", pkg),
					slog.String("section", model.SectionBase),
				)
				continue
			}
			return err
		}
		artifacts = append(artifacts, artifact)
	}
	for _, pkg := range flavor.Userspace {
		artifact, err := uc.fetchUserspacePackage(ctx, flavor, pkg, staging)
		if err != nil {
			if goerr.HasTag(err, types.ErrTagNotFound) {
				logger.Warn("Package not found in this release, skipping",
					slog.String("package", pkg),
				)
				continue
			}
			return err
		}
		artifacts = append(artifacts, artifact)
	}

	// Phase two: materialize everything into the destination.
	for _, artifact := range artifacts {
		if err := uc.archive.Materialize(ctx, artifact, dest); err != nil {
			return err
		}
	}

	logger.Info("Flavor installed",
		slog.String("flavor", flavorID),
		slog.Int("packages", len(artifacts)),
		slog.String("dest", dest),
	)

	return nil
}

// fetchUserspacePackage looks a userspace package up under unixlike/,
// falling back to util/ when the first section does not carry it. Packages
// moved between those sections across releases.
func (uc *UseCase) fetchUserspacePackage(ctx context.Context, flavor model.Flavor, pkg, staging string) (*model.Artifact, error) {
	artifact, err := uc.fetchPackage(ctx, flavor, model.SectionUnixLike, pkg, staging)
	if err != nil && goerr.HasTag(err, types.ErrTagNotFound) {
		ctxlog.From(ctx).Debug("Package not under unixlike, retrying util",
			slog.String("package", pkg),
		)
		return uc.fetchPackage(ctx, flavor, model.SectionUtil, pkg, staging)
	}

	return artifact, err
}

// fetchPackage downloads one package archive plus its companion metadata
// file into staging and verifies the archive. A missing companion only
// degrades verification to a warning; a missing archive means the package is
// absent from this section.
func (uc *UseCase) fetchPackage(ctx context.Context, flavor model.Flavor, section, pkg, staging string) (*model.Artifact, error) {
	meta, err := model.ParseResource(flavor.PackageURL(section, pkg+".txt"))
	if err != nil {
		return nil, err
	}
	if _, err := uc.fetcher.Fetch(ctx, meta, staging); err != nil {
		// The archive fetch below decides whether the package exists in
		// this section at all.
		if !goerr.HasTag(err, types.ErrTagNotFound) {
			return nil, err
		}
	}

	res, err := model.ParseResource(flavor.PackageURL(section, pkg+".zip"))
	if err != nil {
		return nil, err
	}
	artifact, err := uc.fetcher.Fetch(ctx, res, staging)
	if err != nil {
		return nil, err
	}

	if err := uc.verifyArtifact(ctx, artifact, ""); err != nil {
		return nil, err
	}

	return artifact, nil
}
