// Package model drives Ollama model operations: pull, interactive run, and
// listing. Every operation validates the model name first and ensures the
// server is up before spawning the subprocess.
package model

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sho-luv/cloudlamma/internal/config"
	"github.com/sho-luv/cloudlamma/internal/execx"
	"github.com/sho-luv/cloudlamma/internal/modelname"
	"github.com/sho-luv/cloudlamma/internal/ui"
)

// ServerEnsurer is the launcher-side precondition: the server must be up
// before any model subprocess runs.
type ServerEnsurer interface {
	EnsureRunning(ctx context.Context) error
}

// Manager runs model operations against the local server.
type Manager struct {
	cfg      config.Config
	run      execx.Runner
	launcher ServerEnsurer
	log      zerolog.Logger

	// pullCmd is swappable for tests.
	pullCmd func(name string) *exec.Cmd
}

// NewManager returns a Manager bound to the given launcher.
func NewManager(cfg config.Config, run execx.Runner, launcher ServerEnsurer, log zerolog.Logger) *Manager {
	return &Manager{
		cfg:      cfg,
		run:      run,
		launcher: launcher,
		log:      log.With().Str("component", "model").Logger(),
		pullCmd: func(name string) *exec.Cmd {
			return exec.Command("ollama", "pull", name)
		},
	}
}

// Pull downloads a model, streaming progress with the repetitive manifest
// lines collapsed. A nonzero exit is reported with the model name.
func (m *Manager) Pull(ctx context.Context, name string) error {
	clean, err := modelname.Sanitize(name, m.cfg.MaxModelNameLen)
	if err != nil {
		return err
	}
	ui.Infof("Pulling model: %s...", clean)
	if err := m.launcher.EnsureRunning(ctx); err != nil {
		return err
	}

	cmd := m.pullCmd(clean)
	pr, pw, err := os.Pipe()
	if err != nil {
		return err
	}
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return fmt.Errorf("start pull: %w", err)
	}
	_ = pw.Close()

	printer := &progressPrinter{w: ui.Output()}
	sc := bufio.NewScanner(pr)
	for sc.Scan() {
		printer.Line(sc.Text())
	}
	printer.Flush()
	_ = pr.Close()

	if err := cmd.Wait(); err != nil {
		ui.Errorf("Failed to pull model: %s", clean)
		return fmt.Errorf("pull %s: %w", clean, err)
	}
	ui.Infof("Successfully pulled model: %s", clean)
	return nil
}

// Run hands the terminal to `ollama run` for an interactive session.
func (m *Manager) Run(ctx context.Context, name string) error {
	clean, err := modelname.Sanitize(name, m.cfg.MaxModelNameLen)
	if err != nil {
		return err
	}
	ui.Infof("Running model: %s...", clean)
	if err := m.launcher.EnsureRunning(ctx); err != nil {
		return err
	}
	if err := m.run.Run(ctx, execx.Cmd{
		Path: "ollama", Args: []string{"run", clean}, Interactive: true,
	}); err != nil {
		ui.Errorf("Error running model: %s", clean)
		return err
	}
	return nil
}

// List returns the names of installed models.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	if err := m.launcher.EnsureRunning(ctx); err != nil {
		return nil, err
	}
	out, err := m.run.Output(ctx, execx.Cmd{
		Path: "ollama", Args: []string{"list"}, Timeout: m.cfg.APITimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return parseModelList(out), nil
}

// parseModelList extracts model names from `ollama list` columnar output:
// the first line is a header, the first field of each row is the name.
func parseModelList(out string) []string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) <= 1 {
		return nil
	}
	var names []string
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			names = append(names, fields[0])
		}
	}
	return names
}

// EnsureDefault pulls the configured default model when none is installed.
func (m *Manager) EnsureDefault(ctx context.Context) error {
	names, err := m.List(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		ui.Infof("No models found. Pulling default model (%s)...", m.cfg.DefaultModel)
		return m.Pull(ctx, m.cfg.DefaultModel)
	}
	ui.Infof("Found %d installed models: %s", len(names), strings.Join(names, ", "))
	return nil
}

// ShowModels prints the installed models.
func (m *Manager) ShowModels(ctx context.Context) error {
	names, err := m.List(ctx)
	if err != nil {
		return err
	}
	ui.Infof("Available models on your Ollama instance:")
	for _, n := range names {
		ui.Plainf(" - %s\n", n)
	}
	if len(names) == 0 {
		ui.Plainf(" (none)\n")
	}
	return nil
}
