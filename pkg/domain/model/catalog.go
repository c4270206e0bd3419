package model

import (
	"sort"
	"strings"
)

// Repository sections a package archive may live under on the mirror.
// Userspace packages moved between unixlike/ and util/ across releases, so
// lookups try unixlike/ first and fall back to util/.
const (
	SectionBase     = "base"
	SectionUnixLike = "unixlike"
	SectionUtil     = "util"
)

// Flavor describes one known DOS distribution: where its package repository
// lives and which packages make up an install.
type Flavor struct {
	Name      string   `toml:"name"`
	BaseURL   string   `toml:"base_url"`
	Base      []string `toml:"base"`
	Userspace []string `toml:"userspace"`
}

// PackageURL returns the download URL of a repository file under the given
// section, e.g. base/kernel.zip.
func (f Flavor) PackageURL(section, filename string) string {
	return strings.TrimSuffix(f.BaseURL, "/") + "/" + section + "/" + filename
}

// Catalog is the table of known flavors. It is loaded once at startup and
// passed to the orchestrator; nothing mutates it afterwards.
type Catalog struct {
	Flavors map[string]Flavor `toml:"flavor"`
}

// Flavor looks up a flavor by identifier.
func (c *Catalog) Flavor(id string) (Flavor, bool) {
	f, ok := c.Flavors[id]
	return f, ok
}

// IDs returns the known flavor identifiers in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Flavors))
	for id := range c.Flavors {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}
