package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sho-luv/cloudlamma/internal/cli"
	"github.com/sho-luv/cloudlamma/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			ui.Plainf("\n")
			ui.Infof("Operation cancelled by user.")
			return
		}
		ui.Errorf("%v", err)
		os.Exit(1)
	}
}
