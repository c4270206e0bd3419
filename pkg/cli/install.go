package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/dostools/fdget/pkg/cli/config"
)

func cmdInstall() *cli.Command {
	var (
		installCfg config.Install
		catalogCfg config.Catalog
	)

	flags := append(installCfg.Flags(), catalogCfg.Flags()...)

	return &cli.Command{
		Name:      "install",
		Aliases:   []string{"i"},
		Usage:     "Install a known DOS flavor into the destination",
		ArgsUsage: "<flavor>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("install takes exactly one flavor argument",
					goerr.V("args", c.Args().Slice()))
			}
			flavorID := c.Args().First()

			logger := ctxlog.From(ctx)
			logger.Info("Installing DOS flavor",
				slog.String("flavor", flavorID),
				slog.String("dest", installCfg.Dest),
			)

			uc, err := buildUseCase(catalogCfg.Path)
			if err != nil {
				return err
			}

			return uc.InstallFlavor(ctx, flavorID, installCfg.Dest)
		},
	}
}
