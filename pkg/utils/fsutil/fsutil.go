package fsutil

import (
	"errors"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
)

// IsDirEmpty reports whether dir contains no entries. A directory that does
// not exist yet counts as empty, so callers can treat "missing" and "fresh"
// destinations the same way.
func IsDirEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, goerr.Wrap(err, "failed to open directory", goerr.V("dir", dir))
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil {
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		return false, goerr.Wrap(err, "failed to read directory", goerr.V("dir", dir))
	}

	return false, nil
}

// Exists reports whether path refers to an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MoveFile renames src to dst. When the rename fails because the paths live
// on different filesystems, it falls back to copy-and-remove.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return goerr.Wrap(err, "failed to open source file", goerr.V("src", src))
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return goerr.Wrap(err, "failed to stat source file", goerr.V("src", src))
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return goerr.Wrap(err, "failed to create destination file", goerr.V("dst", dst))
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return goerr.Wrap(err, "failed to copy file content",
			goerr.V("src", src), goerr.V("dst", dst))
	}

	if err := out.Close(); err != nil {
		return goerr.Wrap(err, "failed to finish destination file", goerr.V("dst", dst))
	}

	if err := os.Remove(src); err != nil {
		return goerr.Wrap(err, "failed to remove source file after copy", goerr.V("src", src))
	}

	return nil
}
