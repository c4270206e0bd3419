package model

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/dostools/fdget/pkg/domain/types"
)

// Disk-set filenames embed their volume numbering in one of two conventions:
// "disk<K>of<N>" (digits after "disk" index this volume, digits after "of"
// give the total) or a bare "disk<N>" where the digits name the final
// volume. Both tokens are case-insensitive and tolerate one space before the
// digits.
var (
	reDiskIndex = regexp.MustCompile(`(?i)disk ?([0-9]+)`)
	reDiskTotal = regexp.MustCompile(`(?i)of ?([0-9]+)`)
)

// ExpandDiskSet derives the ordered 1-indexed list of sibling resources that
// make up the multi-volume set the seed belongs to. A filename without the
// "disk" token is a standalone resource and expands to itself. Filenames
// that carry the token but no usable digits fail with a malformed-filename
// error rather than guessing.
func ExpandDiskSet(seed *Resource) ([]*Resource, error) {
	name := seed.Filename
	lower := strings.ToLower(name)

	if !strings.Contains(lower, "disk") {
		return []*Resource{seed}, nil
	}

	loc := reDiskIndex.FindStringSubmatchIndex(name)
	if loc == nil {
		return nil, goerr.New("filename has a disk token but no disk number",
			goerr.V("filename", name), goerr.T(types.ErrTagMalformedFilename))
	}

	var total int
	if strings.Contains(lower, "of") {
		// "disk K of N": the count comes from the digits after "of"; the
		// digits after "disk" are the part to substitute.
		m := reDiskTotal.FindStringSubmatch(name)
		if m == nil {
			return nil, goerr.New("filename has an of token but no disk count",
				goerr.V("filename", name), goerr.T(types.ErrTagMalformedFilename))
		}

		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, goerr.Wrap(err, "disk count is not a usable number",
				goerr.V("filename", name), goerr.T(types.ErrTagMalformedFilename))
		}
		total = n
	} else {
		// Bare "disk N": the seed is assumed to reference the final disk.
		n, err := strconv.Atoi(name[loc[2]:loc[3]])
		if err != nil {
			return nil, goerr.Wrap(err, "disk number is not a usable number",
				goerr.V("filename", name), goerr.T(types.ErrTagMalformedFilename))
		}
		total = n
	}

	if total < 1 {
		return nil, goerr.New("disk count must be at least 1",
			goerr.V("filename", name), goerr.V("count", total),
			goerr.T(types.ErrTagMalformedFilename))
	}

	// Substitute the disk-index digit run with 1..N, leaving the prefix and
	// any "of N" suffix byte-identical.
	set := make([]*Resource, 0, total)
	for i := 1; i <= total; i++ {
		sibling := name[:loc[2]] + strconv.Itoa(i) + name[loc[3]:]
		set = append(set, seed.Sibling(sibling))
	}

	return set, nil
}
