package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/urfave/cli/v3"

	"github.com/dostools/fdget/pkg/domain/types"
)

// Install holds destination configuration shared by the install and fetch
// commands.
type Install struct {
	Dest string
}

// Flags returns CLI flags for destination configuration
func (c *Install) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dest",
			Aliases:     []string{"d"},
			Usage:       "Destination directory for the assembled files",
			Value:       filepath.Join(xdg.DataHome, types.AppName, "drive_c"),
			Destination: &c.Dest,
			Sources:     cli.EnvVars("FDGET_DEST"),
		},
	}
}

// Catalog holds flavor catalog configuration
type Catalog struct {
	Path string
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Flavor catalog TOML file replacing the built-in one",
			Destination: &c.Path,
			Sources:     cli.EnvVars("FDGET_CATALOG"),
		},
	}
}

// Checksums holds caller-supplied SHA-256 digests for a fetched disk set.
type Checksums struct {
	Sums []string
}

// Flags returns CLI flags for checksum configuration
func (c *Checksums) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "sha256",
			Usage:       "Expected SHA-256 digest per disk, in set order (repeatable)",
			Destination: &c.Sums,
			Sources:     cli.EnvVars("FDGET_SHA256"),
		},
	}
}
