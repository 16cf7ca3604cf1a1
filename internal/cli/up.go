package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sho-luv/cloudlamma/internal/setup"
	"github.com/sho-luv/cloudlamma/internal/tunnel"
	"github.com/sho-luv/cloudlamma/internal/ui"
)

// upAction runs the full session: install checks, server startup, default
// model, and a tunnel held open until interrupted.
func upAction(ctx context.Context, o *Options) error {
	a, err := buildApp(o)
	if err != nil {
		return err
	}

	if err := ensureTool(ctx, a, o, "ollama", a.installer.Ollama); err != nil {
		return err
	}
	if err := ensureTool(ctx, a, o, "cloudflared", a.installer.Cloudflared); err != nil {
		return err
	}

	if err := a.launcher.EnsureRunning(ctx); err != nil {
		return err
	}
	if err := a.models.EnsureDefault(ctx); err != nil {
		return err
	}

	sup := tunnel.New(a.cfg, a.log, o.Verbose)
	if err := sup.Start(ctx); err != nil {
		return err
	}
	ui.Infof("Tunnel established!")
	ui.Plainf("\nTemporary tunnel URL: %s\n", sup.URL())
	ui.Plainf("Your Ollama server is now reachable at that address.\n")
	ui.Plainf("Press Ctrl+C to stop the tunnel.\n\n")
	return sup.Wait(ctx)
}

// ensureTool installs name when missing, honoring the prompt outcome.
func ensureTool(ctx context.Context, a *app, o *Options, name string, install func(context.Context) error) error {
	outcome, err := a.installer.Ensure(ctx, name, o.AssumeYes, install)
	switch outcome {
	case setup.OutcomeDeclined:
		ui.Errorf("%s is required to continue.", name)
		return fmt.Errorf("%s installation declined", name)
	case setup.OutcomeInstalled:
		ui.Infof("%s installed successfully.", name)
	case setup.OutcomeUnsupportedPlatform:
		ui.Errorf("%v", err)
	}
	if err != nil {
		if !errors.Is(err, setup.ErrUnsupportedPlatform) {
			ui.Errorf("Failed to install %s: %v", name, err)
		}
		return err
	}
	return nil
}
