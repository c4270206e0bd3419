package checksum_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/dostools/fdget/pkg/infra/checksum"
)

func TestSum(t *testing.T) {
	dir := t.TempDir()

	// Well-known SHA-256 test vectors.
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "empty file",
			content: "",
			want:    "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:    "abc",
			content: "abc",
			want:    "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			gt.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			got, err := checksum.Sum(path)
			gt.NoError(t, err)
			gt.Equal(t, got, tt.want)
		})
	}
}

func TestSum_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.zip")
	gt.NoError(t, os.WriteFile(path, []byte("disk image payload"), 0644))

	first, err := checksum.Sum(path)
	gt.NoError(t, err)

	second, err := checksum.Sum(path)
	gt.NoError(t, err)
	gt.Equal(t, first, second)
}

func TestSum_MissingFile(t *testing.T) {
	_, err := checksum.Sum(filepath.Join(t.TempDir(), "absent.zip"))
	gt.Error(t, err)
}

func TestCompanionPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/tmp/kernel.zip", want: "/tmp/kernel.txt"},
		{path: "/tmp/base/command.zip", want: "/tmp/base/command.txt"},
		{path: "/tmp/noext", want: "/tmp/noext.txt"},
	}

	for _, tt := range tests {
		if got := checksum.CompanionPath(tt.path); got != tt.want {
			t.Errorf("CompanionPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCompanion(t *testing.T) {
	dir := t.TempDir()

	writeCompanion := func(t *testing.T, name, content string) string {
		t.Helper()
		artifact := filepath.Join(dir, name)
		gt.NoError(t, os.WriteFile(checksum.CompanionPath(artifact), []byte(content), 0644))
		return artifact
	}

	t.Run("digest line preceded by other lines", func(t *testing.T) {
		artifact := writeCompanion(t, "kernel.zip",
			"kernel 2043 for FreeDOS\n"+
				"MD5    0123456789abcdef\n"+
				"SHA256 ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad\n"+
				"SHA256 not-the-first-line\n")

		digest, err := checksum.Companion(artifact)
		gt.NoError(t, err)
		gt.Equal(t, digest, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
	})

	t.Run("digest is whitespace trimmed", func(t *testing.T) {
		artifact := writeCompanion(t, "command.zip",
			"SHA256    e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855  \n")

		digest, err := checksum.Companion(artifact)
		gt.NoError(t, err)
		gt.Equal(t, digest, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")
	})

	t.Run("lowercase prefix does not match", func(t *testing.T) {
		artifact := writeCompanion(t, "attrib.zip", "sha256 deadbeef\n")

		_, err := checksum.Companion(artifact)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, checksum.ErrNoDigest))
	})

	t.Run("missing companion file", func(t *testing.T) {
		_, err := checksum.Companion(filepath.Join(dir, "lonely.zip"))
		gt.Error(t, err)
		gt.True(t, errors.Is(err, checksum.ErrNoDigest))
	})

	t.Run("companion without digest line", func(t *testing.T) {
		artifact := writeCompanion(t, "mem.zip", "just a description\nno digest here\n")

		_, err := checksum.Companion(artifact)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, checksum.ErrNoDigest))
	})
}
