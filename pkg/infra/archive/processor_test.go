package archive_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/dostools/fdget/pkg/domain/model"
	"github.com/dostools/fdget/pkg/infra/archive"
)

// MockCopier is a mock implementation of ImageCopier
type MockCopier struct {
	copyAllFunc func(ctx context.Context, imagePath, destDir string) error
	calls       []MockCopyCall
}

type MockCopyCall struct {
	ImagePath string
	DestDir   string
}

func (m *MockCopier) Available() error {
	return nil
}

func (m *MockCopier) CopyAll(ctx context.Context, imagePath, destDir string) error {
	m.calls = append(m.calls, MockCopyCall{ImagePath: imagePath, DestDir: destDir})
	if m.copyAllFunc != nil {
		return m.copyAllFunc(ctx, imagePath, destDir)
	}
	return nil
}

// writeZip writes a ZIP at path containing the given entries.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		gt.NoError(t, err)
		_, err = w.Write([]byte(content))
		gt.NoError(t, err)
	}
	gt.NoError(t, zw.Close())
	gt.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func artifactFor(t *testing.T, path string) *model.Artifact {
	t.Helper()

	res, err := model.ParseResource("https://mirror.example.com/pub/" + filepath.Base(path))
	gt.NoError(t, err)

	return &model.Artifact{Path: path, Source: res}
}

func TestProcessor_Materialize_DiskImage(t *testing.T) {
	ctx := context.Background()
	staging := t.TempDir()
	dest := t.TempDir()

	zipPath := filepath.Join(staging, "game-disk1of2.zip")
	writeZip(t, zipPath, map[string]string{"A.IMG": "raw disk image bytes"})

	var seenContent []byte
	mock := &MockCopier{
		copyAllFunc: func(ctx context.Context, imagePath, destDir string) error {
			// The extracted image must exist while the copier runs.
			data, err := os.ReadFile(imagePath)
			gt.NoError(t, err)
			seenContent = data
			return nil
		},
	}

	p := archive.New(mock)
	gt.NoError(t, p.Materialize(ctx, artifactFor(t, zipPath), dest))

	// Copier was invoked once with the extracted image and the destination.
	gt.Equal(t, len(mock.calls), 1)
	gt.Equal(t, filepath.Base(mock.calls[0].ImagePath), "A.IMG")
	gt.Equal(t, mock.calls[0].DestDir, dest)
	gt.Equal(t, seenContent, []byte("raw disk image bytes"))

	// The unpack intermediates are gone; only the archive itself remains in
	// staging until batch cleanup.
	entries, err := os.ReadDir(staging)
	gt.NoError(t, err)
	gt.Equal(t, len(entries), 1)
	gt.Equal(t, entries[0].Name(), "game-disk1of2.zip")
}

func TestProcessor_Materialize_MultiEntryZip(t *testing.T) {
	ctx := context.Background()
	staging := t.TempDir()
	dest := t.TempDir()

	zipPath := filepath.Join(staging, "grep.zip")
	writeZip(t, zipPath, map[string]string{
		"BIN/GREP.EXE":        "binary",
		"DOC/GREP/README.TXT": "docs",
	})
	original, err := os.ReadFile(zipPath)
	gt.NoError(t, err)

	mock := &MockCopier{}
	p := archive.New(mock)
	gt.NoError(t, p.Materialize(ctx, artifactFor(t, zipPath), dest))

	// Moved verbatim, not unpacked, copier never touched.
	gt.Equal(t, len(mock.calls), 0)

	moved, err := os.ReadFile(filepath.Join(dest, "grep.zip"))
	gt.NoError(t, err)
	gt.Equal(t, moved, original)

	_, err = os.Stat(zipPath)
	gt.True(t, os.IsNotExist(err))
}

func TestProcessor_Materialize_PlainFile(t *testing.T) {
	ctx := context.Background()
	staging := t.TempDir()
	dest := t.TempDir()

	path := filepath.Join(staging, "autoexec.bat")
	gt.NoError(t, os.WriteFile(path, []byte("@echo off\r\n"), 0644))

	mock := &MockCopier{}
	p := archive.New(mock)
	gt.NoError(t, p.Materialize(ctx, artifactFor(t, path), dest))

	gt.Equal(t, len(mock.calls), 0)
	data, err := os.ReadFile(filepath.Join(dest, "autoexec.bat"))
	gt.NoError(t, err)
	gt.Equal(t, data, []byte("@echo off\r\n"))
}

func TestProcessor_Materialize_UppercaseExtension(t *testing.T) {
	ctx := context.Background()
	staging := t.TempDir()
	dest := t.TempDir()

	zipPath := filepath.Join(staging, "GAME-DISK2.ZIP")
	writeZip(t, zipPath, map[string]string{"B.IMG": "image"})

	mock := &MockCopier{}
	p := archive.New(mock)
	gt.NoError(t, p.Materialize(ctx, artifactFor(t, zipPath), dest))

	gt.Equal(t, len(mock.calls), 1)
	gt.Equal(t, filepath.Base(mock.calls[0].ImagePath), "B.IMG")
}

func TestProcessor_Materialize_CopierFailure(t *testing.T) {
	ctx := context.Background()
	staging := t.TempDir()
	dest := t.TempDir()

	zipPath := filepath.Join(staging, "tool-disk3.zip")
	writeZip(t, zipPath, map[string]string{"C.IMG": "image"})

	mock := &MockCopier{
		copyAllFunc: func(ctx context.Context, imagePath, destDir string) error {
			return errors.New("mcopy exploded")
		},
	}

	p := archive.New(mock)
	err := p.Materialize(ctx, artifactFor(t, zipPath), dest)
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("mcopy exploded")

	// Cleanup still ran: no unpack directory survives the failure.
	entries, readErr := os.ReadDir(staging)
	gt.NoError(t, readErr)
	gt.Equal(t, len(entries), 1)
	gt.Equal(t, entries[0].Name(), "tool-disk3.zip")
}

func TestProcessor_Materialize_CorruptedZip(t *testing.T) {
	ctx := context.Background()
	staging := t.TempDir()

	zipPath := filepath.Join(staging, "broken.zip")
	gt.NoError(t, os.WriteFile(zipPath, []byte("this is not a zip"), 0644))

	p := archive.New(&MockCopier{})
	err := p.Materialize(ctx, artifactFor(t, zipPath), t.TempDir())
	gt.Error(t, err)
}
