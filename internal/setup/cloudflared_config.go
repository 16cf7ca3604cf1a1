package setup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sho-luv/cloudlamma/internal/ui"
)

// tunnelConfig is the persistent cloudflared configuration written after an
// index-based install: a named tunnel with one ingress rule pointing at the
// local server.
type tunnelConfig struct {
	Tunnel          string        `yaml:"tunnel"`
	CredentialsFile string        `yaml:"credentials-file"`
	Ingress         []ingressRule `yaml:"ingress"`
}

type ingressRule struct {
	Service string `yaml:"service"`
}

// configureCloudflared writes ~/.cloudflared/config.yml and registers
// cloudflared as a host service. The file write is atomic: the content lands
// in a temp file first and is renamed into place, so a failure leaves no
// partial config behind.
func (in *Installer) configureCloudflared(ctx context.Context) error {
	ui.Infof("Generating default config.yml for cloudflared...")

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("home dir: %w", err)
	}
	dir := filepath.Join(home, ".cloudflared")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	cfg := tunnelConfig{
		Tunnel:          "ollama-tunnel",
		CredentialsFile: filepath.Join(dir, "ollama-tunnel.json"),
		Ingress: []ingressRule{
			{Service: fmt.Sprintf("http://localhost:%d", in.cfg.OllamaPort)},
		},
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(dir, "config.yml"), data, 0o644); err != nil {
		return fmt.Errorf("write cloudflared config: %w", err)
	}

	return in.maybeSudo(ctx, in.cfg.ServiceTimeout, "cloudflared", "service", "install")
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
