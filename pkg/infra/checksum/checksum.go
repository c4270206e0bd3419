package checksum

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ErrNoDigest reports that no known-good digest could be located for a file,
// neither supplied by the caller nor found in a companion metadata file.
// Callers are expected to degrade this to a warning, not a failure.
var ErrNoDigest = goerr.New("no digest available")

// shaPrefix marks the digest line inside a companion metadata file. The
// digest itself starts at a fixed offset after the prefix, e.g.
// "SHA256  <64 hex chars>". Matching is case-sensitive.
const shaPrefix = "SHA"

const digestOffset = len("SHA256")

// Sum computes the SHA-256 digest of the file at path, returned as lowercase
// hex.
func Sum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to open file for hashing", goerr.V("path", path))
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", goerr.Wrap(err, "failed to hash file", goerr.V("path", path))
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// CompanionPath returns the path of the plaintext metadata file that may
// carry a known-good digest for path: same base name, extension replaced
// with ".txt".
func CompanionPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".txt"
}

// Companion reads the known-good digest for path from its companion metadata
// file. Only the first line starting with "SHA" counts; the digest is the
// remainder of that line after the fixed prefix, whitespace-trimmed. A
// missing companion file or a companion without a digest line yields
// ErrNoDigest.
func Companion(path string) (string, error) {
	companion := CompanionPath(path)

	f, err := os.Open(companion)
	if err != nil {
		if os.IsNotExist(err) {
			return "", goerr.Wrap(ErrNoDigest, "no companion metadata file",
				goerr.V("path", path), goerr.V("companion", companion))
		}
		return "", goerr.Wrap(err, "failed to open companion metadata file",
			goerr.V("companion", companion))
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, shaPrefix) {
			continue
		}
		if len(line) <= digestOffset {
			break
		}

		digest := strings.TrimSpace(line[digestOffset:])
		if digest == "" {
			break
		}
		return digest, nil
	}
	if err := scanner.Err(); err != nil {
		return "", goerr.Wrap(err, "failed to read companion metadata file",
			goerr.V("companion", companion))
	}

	return "", goerr.Wrap(ErrNoDigest, "companion metadata file has no digest line",
		goerr.V("companion", companion))
}
