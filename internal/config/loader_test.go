package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "ollama_port: 11500\ndefault_model: mistral\ninstall_timeout: 60\nretry_delay: 0.5\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OllamaPort != 11500 || cfg.DefaultModel != "mistral" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.InstallTimeout != 60*time.Second {
		t.Fatalf("install timeout: %v", cfg.InstallTimeout)
	}
	if cfg.RetryDelay != 500*time.Millisecond {
		t.Fatalf("retry delay: %v", cfg.RetryDelay)
	}
	// unspecified keys keep their defaults
	if cfg.MaxRetries != 3 || cfg.TunnelURLWait != 30 {
		t.Fatalf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"ollama_port":12000,"max_retries":5,"retry_backoff":1.5}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OllamaPort != 12000 || cfg.MaxRetries != 5 || cfg.RetryBackoff != 1.5 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "default_model=\"phi3\"\nstartup_wait=10\ntunnel_url_wait=15\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultModel != "phi3" || cfg.StartupWait != 10 || cfg.TunnelURLWait != 15 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestDefaultServerURL(t *testing.T) {
	cfg := Default()
	if cfg.ServerURL() != "http://localhost:11434" {
		t.Fatalf("server url: %s", cfg.ServerURL())
	}
	r := cfg.Retry()
	if r.MaxAttempts != 3 || r.Delay != time.Second || r.Backoff != 2.0 {
		t.Fatalf("retry defaults: %+v", r)
	}
}
