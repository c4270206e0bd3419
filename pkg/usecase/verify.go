package usecase

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/dostools/fdget/pkg/domain/model"
	"github.com/dostools/fdget/pkg/domain/types"
	"github.com/dostools/fdget/pkg/infra/checksum"
)

// verifyArtifact checks the artifact against the best available digest: an
// explicit caller-supplied value wins, else the companion metadata file next
// to the artifact. With neither, a warning is logged and the artifact is
// accepted unverified. A mismatch is fatal; the file is left in place for
// inspection.
func (uc *UseCase) verifyArtifact(ctx context.Context, artifact *model.Artifact, expected string) error {
	logger := ctxlog.From(ctx)

	if expected == "" {
		companion, err := checksum.Companion(artifact.Path)
		switch {
		case err == nil:
			expected = companion
		case errors.Is(err, checksum.ErrNoDigest):
			logger.Warn("No digest available, proceeding unverified",
				slog.String("file", filepath.Base(artifact.Path)),
			)
			return nil
		default:
			return err
		}
	}

	actual, err := checksum.Sum(artifact.Path)
	if err != nil {
		return err
	}

	if !strings.EqualFold(actual, expected) {
		return goerr.New("checksum mismatch, remove the file and download again",
			goerr.V("file", artifact.Path),
			goerr.V("expected", expected),
			goerr.V("actual", actual),
			goerr.T(types.ErrTagIntegrity))
	}

	logger.Info("Checksum verified",
		slog.String("file", filepath.Base(artifact.Path)),
		slog.String("sha256", actual),
	)

	return nil
}
