package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/dostools/fdget/pkg/cli/config"
)

func cmdFetch() *cli.Command {
	var (
		installCfg  config.Install
		catalogCfg  config.Catalog
		checksumCfg config.Checksums
	)

	flags := append(installCfg.Flags(), checksumCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:      "fetch",
		Aliases:   []string{"f"},
		Usage:     "Fetch a disk set from a seed URL and assemble it",
		ArgsUsage: "<seed-url>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("fetch takes exactly one seed URL argument",
					goerr.V("args", c.Args().Slice()))
			}
			seedURL := c.Args().First()

			logger := ctxlog.From(ctx)
			logger.Info("Fetching custom disk set",
				slog.String("dest", installCfg.Dest),
				slog.Int("digests", len(checksumCfg.Sums)),
			)

			uc, err := buildUseCase(catalogCfg.Path)
			if err != nil {
				return err
			}

			return uc.FetchSet(ctx, seedURL, installCfg.Dest, checksumCfg.Sums)
		},
	}
}
