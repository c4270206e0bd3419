package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/dostools/fdget/pkg/catalog"
	"github.com/dostools/fdget/pkg/cli/config"
)

func cmdFlavors() *cli.Command {
	var catalogCfg config.Catalog

	return &cli.Command{
		Name:  "flavors",
		Usage: "List the DOS flavors the catalog can install",
		Flags: catalogCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			cat, err := catalog.Load(catalogCfg.Path)
			if err != nil {
				return err
			}

			title := color.New(color.FgCyan, color.Bold)
			for _, id := range cat.IDs() {
				flavor, _ := cat.Flavor(id)

				title.Println(id)
				if flavor.Name != "" {
					fmt.Printf("  name:       %s\n", flavor.Name)
				}
				fmt.Printf("  repository: %s\n", flavor.BaseURL)
				fmt.Printf("  packages:   %d base, %d userspace\n",
					len(flavor.Base), len(flavor.Userspace))
			}

			return nil
		},
	}
}
