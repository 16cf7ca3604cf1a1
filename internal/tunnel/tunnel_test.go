package tunnel

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sho-luv/cloudlamma/internal/config"
	"github.com/sho-luv/cloudlamma/internal/ui"
)

func testSupervisor(t *testing.T, verbose bool, script string) *Supervisor {
	t.Helper()
	cfg := config.Default()
	cfg.TunnelURLWait = 2
	cfg.ServiceTimeout = 5 * time.Second
	s := New(cfg, zerolog.Nop(), verbose)
	s.newCmd = func(configPath string) *exec.Cmd {
		return exec.Command("sh", "-c", script)
	}
	return s
}

func TestStartDiscoversURL(t *testing.T) {
	restore := ui.SetOutput(&bytes.Buffer{})
	defer restore()

	s := testSupervisor(t, false, `echo "INF https://abc123.trycloudflare.com"; sleep 60`)
	if s.State() != Idle {
		t.Fatalf("initial state = %v", s.State())
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.State() != Active {
		t.Fatalf("state = %v, want active", s.State())
	}
	if s.URL() != "https://abc123.trycloudflare.com" {
		t.Fatalf("url = %q", s.URL())
	}

	configPath := s.configPath
	if configPath == "" {
		t.Fatal("no scoped config path")
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("config missing while active: %v", err)
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if s.State() != Stopped {
		t.Fatalf("state = %v, want stopped", s.State())
	}
	if _, err := os.Stat(configPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("config not cleaned up: %v", err)
	}
}

func TestStartUnexpectedTermination(t *testing.T) {
	restore := ui.SetOutput(&bytes.Buffer{})
	defer restore()

	s := testSupervisor(t, false, `echo "no url in sight"`)
	err := s.Start(context.Background())
	if !errors.Is(err, ErrTerminated) {
		t.Fatalf("expected ErrTerminated, got %v", err)
	}
	if s.State() != Stopped {
		t.Fatalf("state = %v, want stopped", s.State())
	}
}

func TestStartWindowExpiry(t *testing.T) {
	restore := ui.SetOutput(&bytes.Buffer{})
	defer restore()

	s := testSupervisor(t, false, `sleep 60`)
	s.cfg.TunnelURLWait = 1
	err := s.Start(context.Background())
	if !errors.Is(err, ErrNoURL) {
		t.Fatalf("expected ErrNoURL, got %v", err)
	}
	if s.State() != Stopped {
		t.Fatalf("state = %v, want stopped", s.State())
	}
	if s.configPath != "" {
		t.Fatal("config path not cleared after stop")
	}
}

func TestWaitStopsOnInterrupt(t *testing.T) {
	restore := ui.SetOutput(&bytes.Buffer{})
	defer restore()

	s := testSupervisor(t, false, `echo "INF https://xyz.trycloudflare.com"; sleep 60`)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Wait(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("wait: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("wait did not return after cancel")
	}
	if s.State() != Stopped {
		t.Fatalf("state = %v, want stopped", s.State())
	}
}

func TestVerboseEchoesLines(t *testing.T) {
	var out bytes.Buffer
	restore := ui.SetOutput(&out)
	defer restore()

	s := testSupervisor(t, true, `echo "boring line"; echo "INF https://v.trycloudflare.com"; sleep 60`)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop()
	if !strings.Contains(out.String(), "boring line") {
		t.Fatalf("verbose output missing: %q", out.String())
	}
	if s.URL() != "https://v.trycloudflare.com" {
		t.Fatalf("url = %q", s.URL())
	}
}

func TestQuietStillExtractsURL(t *testing.T) {
	var out bytes.Buffer
	restore := ui.SetOutput(&out)
	defer restore()

	s := testSupervisor(t, false, `echo "2024 INF noise"; echo "INF https://q.trycloudflare.com"; sleep 60`)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop()
	if strings.Contains(out.String(), "INF noise") {
		t.Fatalf("non-verbose run echoed lines: %q", out.String())
	}
	if s.URL() != "https://q.trycloudflare.com" {
		t.Fatalf("url = %q", s.URL())
	}
}

func TestURLPattern(t *testing.T) {
	cases := map[string]string{
		"INF https://abc123.trycloudflare.com":               "https://abc123.trycloudflare.com",
		"2024-01-01 INF | https://a-b-c.trycloudflare.com |": "https://a-b-c.trycloudflare.com",
		"no url here": "",
		"http://abc.trycloudflare.com is not https":             "",
		"INF Registered tunnel connection connIndex=0 loc=sjc1": "",
	}
	for line, want := range cases {
		if got := urlPattern.FindString(line); got != want {
			t.Errorf("FindString(%q) = %q, want %q", line, got, want)
		}
	}
}
