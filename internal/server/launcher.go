// Package server starts the local Ollama server and waits for readiness.
package server

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/sho-luv/cloudlamma/internal/config"
	"github.com/sho-luv/cloudlamma/internal/health"
	"github.com/sho-luv/cloudlamma/internal/ui"
)

// Launcher spawns the inference server as a detached background process and
// polls until it responds. The server deliberately outlives this process: no
// handle is retained after a successful start.
type Launcher struct {
	cfg config.Config
	mon *health.Monitor
	log zerolog.Logger

	// swappable for tests
	interval time.Duration
	spawn    func() error
}

// NewLauncher returns a Launcher for the configured server.
func NewLauncher(cfg config.Config, mon *health.Monitor, log zerolog.Logger) *Launcher {
	l := &Launcher{
		cfg:      cfg,
		mon:      mon,
		log:      log.With().Str("component", "server").Logger(),
		interval: time.Second,
	}
	l.spawn = l.spawnOllama
	return l
}

// spawnOllama starts `ollama serve` bound to all interfaces, so the tunnel
// can reach it, and releases the process handle (fire-and-forget).
func (l *Launcher) spawnOllama() error {
	cmd := exec.Command("ollama", "serve")
	cmd.Env = append(os.Environ(), "OLLAMA_HOST=0.0.0.0")
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	l.log.Debug().Int("pid", cmd.Process.Pid).Msg("ollama serve started")
	return cmd.Process.Release()
}

// EnsureRunning is idempotent: it returns immediately when the server already
// holds its port. Otherwise it spawns the server and polls once per interval
// for the configured startup window. Window expiry only warns; the caller's
// next operation retries on its own.
func (l *Launcher) EnsureRunning(ctx context.Context) error {
	if l.mon.Listening() {
		return nil
	}
	ui.Infof("Starting Ollama on 0.0.0.0...")
	if err := l.spawn(); err != nil {
		return err
	}
	for i := 0; i < l.cfg.StartupWait; i++ {
		if l.mon.Responsive(ctx) {
			ui.Infof("Ollama is now ready.")
			return nil
		}
		select {
		case <-time.After(l.interval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	ui.Warnf("Ollama started but may not be fully responsive yet.")
	return nil
}
