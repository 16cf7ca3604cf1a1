// Package tunnel supervises a temporary cloudflared tunnel for the lifetime
// of one session: spawn, URL discovery, idle supervision, graceful stop.
package tunnel

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/sho-luv/cloudlamma/internal/config"
	"github.com/sho-luv/cloudlamma/internal/ui"
)

// State tracks the supervisor's lifecycle.
type State int

const (
	Idle State = iota
	Starting
	AwaitingURL
	Active
	Stopped
)

func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case AwaitingURL:
		return "awaiting-url"
	case Active:
		return "active"
	case Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

var (
	// ErrNoURL reports that the URL window elapsed with no match.
	ErrNoURL = errors.New("failed to obtain tunnel URL")
	// ErrTerminated reports that cloudflared exited before printing a URL.
	ErrTerminated = errors.New("cloudflared process terminated unexpectedly")
)

// urlPattern recognizes the provider's ephemeral URLs anywhere in a log line.
var urlPattern = regexp.MustCompile(`https://.*?\.trycloudflare\.com`)

// Supervisor owns one cloudflared subprocess and its scoped config file.
// It is the only component that both creates and removes its own artifact.
type Supervisor struct {
	cfg     config.Config
	log     zerolog.Logger
	verbose bool

	state      State
	url        string
	cmd        *exec.Cmd
	configPath string
	lines      chan string
	waitErr    chan error
	exited     bool

	// newCmd is swappable for tests.
	newCmd func(configPath string) *exec.Cmd
}

// New returns an idle Supervisor. Verbose echoes every cloudflared line to
// the user; URL extraction works either way.
func New(cfg config.Config, log zerolog.Logger, verbose bool) *Supervisor {
	s := &Supervisor{
		cfg:     cfg,
		log:     log.With().Str("component", "tunnel").Logger(),
		verbose: verbose,
		state:   Idle,
	}
	s.newCmd = func(configPath string) *exec.Cmd {
		return exec.Command("cloudflared", "tunnel", "--config", configPath, "--url", cfg.ServerURL())
	}
	return s
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State { return s.state }

// URL returns the discovered tunnel URL, or "" before discovery.
func (s *Supervisor) URL() string { return s.url }

// Start spawns cloudflared and blocks until a tunnel URL is discovered, the
// process dies, or the discovery window elapses. On any failure the process
// is stopped and the scoped config file removed.
func (s *Supervisor) Start(ctx context.Context) error {
	if s.state != Idle {
		return fmt.Errorf("tunnel already %s", s.state)
	}
	s.state = Starting
	ui.Infof("Starting temporary Cloudflare tunnel...")

	tmp, err := os.CreateTemp("", "cloudlamma-tunnel-*.yml")
	if err != nil {
		s.state = Stopped
		return fmt.Errorf("create tunnel config: %w", err)
	}
	s.configPath = tmp.Name()
	_ = tmp.Close()

	if err := s.spawn(); err != nil {
		s.removeConfig()
		s.state = Stopped
		return err
	}

	s.state = AwaitingURL
	if err := s.awaitURL(ctx); err != nil {
		_ = s.Stop()
		return err
	}
	s.state = Active
	return nil
}

// spawn starts the process with stdout and stderr merged into one line
// stream consumed by a reader goroutine.
func (s *Supervisor) spawn() error {
	s.cmd = s.newCmd(s.configPath)
	pr, pw, err := os.Pipe()
	if err != nil {
		return err
	}
	s.cmd.Stdout = pw
	s.cmd.Stderr = pw
	if err := s.cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return fmt.Errorf("start cloudflared: %w", err)
	}
	// the child holds the write end now; EOF on pr means the process is gone
	_ = pw.Close()
	s.log.Debug().Int("pid", s.cmd.Process.Pid).Str("config", s.configPath).Msg("cloudflared started")

	s.lines = make(chan string)
	go func() {
		defer close(s.lines)
		defer pr.Close()
		sc := bufio.NewScanner(pr)
		for sc.Scan() {
			s.lines <- sc.Text()
		}
	}()
	s.waitErr = make(chan error, 1)
	go func() { s.waitErr <- s.cmd.Wait() }()
	return nil
}

// awaitURL scans the line stream for the provider URL within the bounded
// discovery window.
func (s *Supervisor) awaitURL(ctx context.Context) error {
	window := time.Duration(s.cfg.TunnelURLWait) * time.Second
	deadline := time.NewTimer(window)
	defer deadline.Stop()
	for {
		select {
		case line, ok := <-s.lines:
			if !ok {
				return ErrTerminated
			}
			if s.verbose {
				ui.Plainf("%s\n", line)
			}
			if m := urlPattern.FindString(line); m != "" {
				s.url = m
				s.log.Debug().Str("url", m).Msg("tunnel url discovered")
				return nil
			}
		case <-deadline.C:
			return ErrNoURL
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Wait blocks while the tunnel is active. It returns once the context is
// canceled (user interrupt) or the process dies, stopping the tunnel and
// cleaning up either way.
func (s *Supervisor) Wait(ctx context.Context) error {
	if s.state != Active {
		return fmt.Errorf("tunnel not active (state %s)", s.state)
	}
	// keep draining lines so the child never blocks on a full pipe
	for {
		select {
		case line, ok := <-s.lines:
			if !ok {
				s.exited = true
				_ = s.Stop()
				return ErrTerminated
			}
			if s.verbose {
				ui.Plainf("%s\n", line)
			}
		case <-ctx.Done():
			ui.Infof("Stopping tunnel...")
			return s.Stop()
		}
	}
}

// Stop terminates the process, waits (bounded) for it to exit, and removes
// the scoped config file. Safe to call more than once.
func (s *Supervisor) Stop() error {
	if s.state == Stopped {
		return nil
	}
	defer func() {
		s.removeConfig()
		s.state = Stopped
	}()
	if s.cmd == nil || s.cmd.Process == nil || s.exited {
		return nil
	}
	_ = s.cmd.Process.Signal(syscall.SIGTERM)
	select {
	case <-s.waitErr:
	case <-time.After(s.cfg.ServiceTimeout):
		s.log.Warn().Msg("cloudflared did not exit after SIGTERM; killing")
		_ = s.cmd.Process.Kill()
		<-s.waitErr
	}
	return nil
}

func (s *Supervisor) removeConfig() {
	if s.configPath == "" {
		return
	}
	if err := os.Remove(s.configPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Debug().Err(err).Msg("remove tunnel config")
	}
	s.configPath = ""
}
