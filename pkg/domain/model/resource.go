package model

import (
	"net/url"
	"path"

	"github.com/m-mizutani/goerr/v2"
)

// Resource is a reference to one remote file. It is derived once from a raw
// URL and treated as immutable afterwards.
type Resource struct {
	URL      *url.URL
	Filename string // last path segment, percent-decoded
}

// ParseResource parses a raw URL into a Resource. The filename attribute is
// the decoded last path segment, so "My%20Game.zip" yields "My Game.zip".
func ParseResource(raw string) (*Resource, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid resource URL", goerr.V("url", raw))
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, goerr.New("resource URL must be absolute", goerr.V("url", raw))
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return nil, goerr.New("resource URL has no filename", goerr.V("url", raw))
	}

	return &Resource{URL: u, Filename: name}, nil
}

// Sibling returns a resource in the same remote directory with the given
// filename. Scheme, host, directory path and query are preserved.
func (r *Resource) Sibling(filename string) *Resource {
	u := *r.URL
	u.Path = path.Join(path.Dir(u.Path), filename)
	// Drop the pre-encoded form so String() re-encodes the new path.
	u.RawPath = ""

	return &Resource{URL: &u, Filename: filename}
}

// String returns the dereferenceable URL with path and query percent-encoded
// through the path-safe allow-list, so spaces and special characters in
// upstream filenames survive the request.
func (r *Resource) String() string {
	return r.URL.String()
}
