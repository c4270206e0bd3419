package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/dostools/fdget/pkg/catalog"
	"github.com/dostools/fdget/pkg/cli/config"
	"github.com/dostools/fdget/pkg/domain/types"
	"github.com/dostools/fdget/pkg/infra/archive"
	"github.com/dostools/fdget/pkg/infra/fetch"
	"github.com/dostools/fdget/pkg/infra/mtools"
	"github.com/dostools/fdget/pkg/usecase"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var loggerCfg config.Logger
	var logger *slog.Logger

	app := &cli.Command{
		Name:    types.AppName,
		Usage:   "Fetch, verify and assemble DOS software distributions",
		Version: types.Version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdInstall(),
			cmdFetch(),
			cmdFlavors(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("Command failed", slog.Any("error", err))
		if hint := remedy(err); hint != "" {
			color.New(color.FgYellow).Fprintln(os.Stderr, hint)
		}
		return err
	}

	return nil
}

// remedy maps tagged failures to a one-line instruction the user can act on.
func remedy(err error) string {
	switch {
	case goerr.HasTag(err, types.ErrTagMissingDependency):
		return "Install GNU mtools and make sure mcopy is on your PATH."
	case goerr.HasTag(err, types.ErrTagIntegrity):
		return "Remove the offending file and download it again."
	case goerr.HasTag(err, types.ErrTagPreexistingDestination):
		return "Choose an empty destination directory with --dest."
	case goerr.HasTag(err, types.ErrTagMalformedFilename):
		return "The filename's disk numbering could not be understood; check the URL."
	}

	return ""
}

// buildUseCase assembles the orchestrator with its production collaborators.
func buildUseCase(catalogPath string) (*usecase.UseCase, error) {
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}

	copier := mtools.New()

	return usecase.New(cat, fetch.New(), archive.New(copier), copier), nil
}
