package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/dostools/fdget/pkg/domain/interfaces"
	"github.com/dostools/fdget/pkg/domain/model"
	"github.com/dostools/fdget/pkg/domain/types"
)

// UseCase sequences fetching, verification and archive processing for the
// two top-level operations: installing a known flavor and fetching a custom
// disk set. All work is sequential; one fetch at a time in list order, all
// archive processing after the batch's fetches complete.
type UseCase struct {
	catalog  *model.Catalog
	fetcher  interfaces.Fetcher
	archive  interfaces.ArchiveProcessor
	copier   interfaces.ImageCopier
	tempRoot string
}

// Option is a functional option for UseCase configuration
type Option func(*UseCase)

// WithTempRoot overrides where per-batch staging directories are created.
func WithTempRoot(dir string) Option {
	return func(uc *UseCase) {
		uc.tempRoot = dir
	}
}

// New creates a UseCase with the given catalog and collaborators.
func New(
	cat *model.Catalog,
	fetcher interfaces.Fetcher,
	archive interfaces.ArchiveProcessor,
	copier interfaces.ImageCopier,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		catalog:  cat,
		fetcher:  fetcher,
		archive:  archive,
		copier:   copier,
		tempRoot: os.TempDir(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// stage creates the per-batch staging directory. The returned cleanup
// removes it and everything inside; callers defer it immediately so staged
// state never outlives the batch, on any exit path.
func (uc *UseCase) stage(ctx context.Context, runID string) (string, func(), error) {
	stagingDir := filepath.Join(uc.tempRoot, fmt.Sprintf("%s-%s", types.AppName, runID))
	if err := os.MkdirAll(stagingDir, 0700); err != nil {
		return "", nil, goerr.Wrap(err, "failed to create staging directory",
			goerr.V("staging_dir", stagingDir))
	}

	cleanup := func() {
		if err := os.RemoveAll(stagingDir); err != nil {
			ctxlog.From(ctx).Warn("Failed to clean up staging directory",
				slog.String("staging_dir", stagingDir),
				slog.Any("error", err),
			)
		}
	}

	return stagingDir, cleanup, nil
}
