package cli

import (
	"context"

	"github.com/sho-luv/cloudlamma/internal/ui"
)

// pullAction downloads one model, defaulting to the configured one.
func pullAction(ctx context.Context, o *Options, name string) error {
	a, err := buildApp(o)
	if err != nil {
		return err
	}
	if name == "" {
		name = a.cfg.DefaultModel
	}
	return a.models.Pull(ctx, name)
}

// runModelAction opens an interactive session, pulling the model first when
// it is not installed yet.
func runModelAction(ctx context.Context, o *Options, name string) error {
	a, err := buildApp(o)
	if err != nil {
		return err
	}
	if name == "" {
		name = a.cfg.DefaultModel
	}

	installed, err := a.models.List(ctx)
	if err != nil {
		return err
	}
	present := false
	for _, n := range installed {
		if n == name {
			present = true
			break
		}
	}
	if !present {
		ui.Infof("Model %s is not installed yet.", name)
		if err := a.models.Pull(ctx, name); err != nil {
			return err
		}
	}
	return a.models.Run(ctx, name)
}

// modelsAction lists the installed models.
func modelsAction(ctx context.Context, o *Options) error {
	a, err := buildApp(o)
	if err != nil {
		return err
	}
	return a.models.ShowModels(ctx)
}
