package catalog

import (
	_ "embed"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/dostools/fdget/pkg/domain/model"
)

//go:embed catalog.toml
var builtin []byte

// Load returns the flavor catalog. With an empty path the built-in tables
// are used; otherwise the TOML file at path replaces them entirely.
func Load(path string) (*model.Catalog, error) {
	data := builtin
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V("path", path))
		}
	}

	var cat model.Catalog
	if err := toml.Unmarshal(data, &cat); err != nil {
		return nil, goerr.Wrap(err, "failed to parse catalog", goerr.V("path", path))
	}

	if len(cat.Flavors) == 0 {
		return nil, goerr.New("catalog defines no flavors", goerr.V("path", path))
	}
	for id, flavor := range cat.Flavors {
		if flavor.BaseURL == "" {
			return nil, goerr.New("catalog flavor has no base URL", goerr.V("flavor", id))
		}
	}

	return &cat, nil
}
