// Package cli wires the command tree to the orchestration packages.
package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/sho-luv/cloudlamma/internal/config"
	"github.com/sho-luv/cloudlamma/internal/execx"
	"github.com/sho-luv/cloudlamma/internal/health"
	"github.com/sho-luv/cloudlamma/internal/logging"
	"github.com/sho-luv/cloudlamma/internal/model"
	"github.com/sho-luv/cloudlamma/internal/server"
	"github.com/sho-luv/cloudlamma/internal/setup"
)

// Options carries the flag state shared by every command.
type Options struct {
	ConfigPath string
	LogLevel   string
	AssumeYes  bool
	Verbose    bool
}

// app bundles the constructed components for one invocation.
type app struct {
	cfg       config.Config
	log       zerolog.Logger
	monitor   *health.Monitor
	installer *setup.Installer
	launcher  *server.Launcher
	models    *model.Manager
}

// buildApp is swappable in tests that exercise full actions.
var buildApp = newApp

func newApp(o *Options) (*app, error) {
	cfg := config.Default()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	log := logging.New(o.LogLevel)
	run := execx.NewRunner(log)
	mon := health.NewMonitor(cfg, log)
	launcher := server.NewLauncher(cfg, mon, log)
	return &app{
		cfg:       cfg,
		log:       log,
		monitor:   mon,
		installer: setup.NewInstaller(cfg, run, log),
		launcher:  launcher,
		models:    model.NewManager(cfg, run, launcher, log),
	}, nil
}

// Execute parses arguments and runs the selected command under ctx.
func Execute(ctx context.Context) error {
	o := &Options{LogLevel: "info"}
	if v := os.Getenv("CLOUDLAMMA_LOG_LEVEL"); v != "" {
		o.LogLevel = v
	}
	return buildRootCmdWith(o).ExecuteContext(ctx)
}
