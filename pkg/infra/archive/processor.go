package archive

import (
	"archive/zip"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/dostools/fdget/pkg/domain/interfaces"
	"github.com/dostools/fdget/pkg/domain/model"
	"github.com/dostools/fdget/pkg/utils/fsutil"
)

// Processor materializes fetched artifacts into the destination directory.
// A ZIP wrapping exactly one entry is treated as a raw DOS disk image whose
// files are pulled off via the image copier; everything else is moved into
// the destination verbatim and left for the emulated OS to unpack.
type Processor struct {
	copier interfaces.ImageCopier
}

// New creates a Processor using the given image copier.
func New(copier interfaces.ImageCopier) *Processor {
	return &Processor{
		copier: copier,
	}
}

// Materialize places the artifact's contents into destDir.
func (p *Processor) Materialize(ctx context.Context, artifact *model.Artifact, destDir string) error {
	logger := ctxlog.From(ctx)

	if strings.EqualFold(filepath.Ext(artifact.Path), ".zip") {
		image, ok, err := p.singleEntry(artifact.Path)
		if err != nil {
			return err
		}
		if ok {
			return p.copyImage(ctx, artifact, image, destDir)
		}
	}

	// Multi-file package or plain file: keep it as-is.
	logger.Info("Moving package into destination",
		slog.String("file", filepath.Base(artifact.Path)),
	)

	dest := filepath.Join(destDir, filepath.Base(artifact.Path))
	if err := fsutil.MoveFile(artifact.Path, dest); err != nil {
		return goerr.Wrap(err, "failed to move package into destination",
			goerr.V("file", artifact.Path), goerr.V("dest", dest))
	}

	return nil
}

// singleEntry reports whether the ZIP at path wraps exactly one entry, and
// that entry's name.
func (p *Processor) singleEntry(path string) (string, bool, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", false, goerr.Wrap(err, "failed to open archive", goerr.V("path", path))
	}
	defer zr.Close()

	if len(zr.File) != 1 {
		return "", false, nil
	}

	return zr.File[0].Name, true, nil
}

// copyImage extracts the wrapped disk image into a scratch directory next to
// the artifact and copies every file off it into destDir. The scratch
// directory is removed on every exit path.
func (p *Processor) copyImage(ctx context.Context, artifact *model.Artifact, entry, destDir string) error {
	logger := ctxlog.From(ctx)

	logger.Info("Extracting disk image from archive",
		slog.String("file", filepath.Base(artifact.Path)),
		slog.String("image", entry),
	)

	unpackDir, err := os.MkdirTemp(filepath.Dir(artifact.Path), "unpack-*")
	if err != nil {
		return goerr.Wrap(err, "failed to create unpack directory")
	}
	defer func() {
		if err := os.RemoveAll(unpackDir); err != nil {
			logger.Warn("Failed to clean up unpack directory",
				slog.String("unpack_dir", unpackDir),
				slog.Any("error", err),
			)
		}
	}()

	imagePath, err := extractEntry(artifact.Path, unpackDir)
	if err != nil {
		return goerr.Wrap(err, "failed to extract disk image",
			goerr.V("archive", artifact.Path))
	}

	if err := p.copier.CopyAll(ctx, imagePath, destDir); err != nil {
		return err
	}

	return nil
}

// extractEntry extracts the only entry of the ZIP at archivePath into
// destDir and returns the extracted path.
func extractEntry(archivePath, destDir string) (string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", goerr.Wrap(err, "failed to open archive", goerr.V("path", archivePath))
	}
	defer zr.Close()

	file := zr.File[0]

	// Guard against path traversal via the entry name.
	destPath := filepath.Join(destDir, file.Name)
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", goerr.New("invalid entry path in archive",
			goerr.V("entry", file.Name), goerr.V("dest", destPath))
	}

	rc, err := file.Open()
	if err != nil {
		return "", goerr.Wrap(err, "failed to open archive entry", goerr.V("entry", file.Name))
	}
	defer rc.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create unpack parent directory",
			goerr.V("dir", filepath.Dir(destPath)))
	}

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.FileInfo().Mode())
	if err != nil {
		return "", goerr.Wrap(err, "failed to create extracted file", goerr.V("path", destPath))
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return "", goerr.Wrap(err, "failed to write extracted file", goerr.V("path", destPath))
	}

	return destPath, nil
}
