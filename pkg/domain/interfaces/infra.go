package interfaces

import (
	"context"

	"github.com/dostools/fdget/pkg/domain/model"
)

// Fetcher retrieves a remote resource into a local directory.
type Fetcher interface {
	// Fetch produces a local artifact for res inside destDir. A file that
	// already exists under the resource's decoded filename is reused
	// without network I/O and marked accordingly.
	Fetch(ctx context.Context, res *model.Resource, destDir string) (*model.Artifact, error)
}

// ArchiveProcessor materializes a fetched artifact into the destination
// directory, either by pulling files off a wrapped disk image or by moving
// the artifact verbatim.
type ArchiveProcessor interface {
	Materialize(ctx context.Context, artifact *model.Artifact, destDir string) error
}

// ImageCopier copies every file off a DOS-formatted disk image into a local
// directory. Implemented by an external tool collaborator.
type ImageCopier interface {
	// Available reports whether the external tool can be executed. Called
	// before any network activity.
	Available() error

	// CopyAll copies all files from the image root into destDir.
	CopyAll(ctx context.Context, imagePath, destDir string) error
}
