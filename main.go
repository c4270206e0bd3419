package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dostools/fdget/pkg/cli"
)

func main() {
	// Interrupts cancel the context so in-flight downloads stop and staged
	// state is cleaned up before exit.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Run(ctx, os.Args); err != nil {
		os.Exit(1)
	}
}
