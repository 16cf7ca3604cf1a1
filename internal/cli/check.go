package cli

import (
	"context"
	"os"

	"github.com/sho-luv/cloudlamma/internal/cloudflare"
	"github.com/sho-luv/cloudlamma/internal/setup"
	"github.com/sho-luv/cloudlamma/internal/ui"
)

// checkAction reports host readiness without changing anything.
func checkAction(ctx context.Context, o *Options) error {
	a, err := buildApp(o)
	if err != nil {
		return err
	}

	ui.Infof("Checking host setup...")
	ui.Plainf("  package manager:  %s\n", setup.DetectPackageManager())
	reportTool("ollama")
	reportTool("cloudflared")

	switch {
	case a.monitor.Responsive(ctx):
		ui.Plainf("  ollama server:    responding on port %d\n", a.cfg.OllamaPort)
	case a.monitor.Listening():
		ui.Plainf("  ollama server:    port %d open but API not responding\n", a.cfg.OllamaPort)
	default:
		ui.Plainf("  ollama server:    not running\n")
	}

	if os.Getenv(cloudflare.TokenEnv) != "" {
		ui.Plainf("  cloudflare token: set\n")
	} else {
		ui.Plainf("  cloudflare token: not set (temporary URLs only)\n")
	}
	return nil
}

func reportTool(name string) {
	if setup.IsInstalled(name) {
		ui.Plainf("  %-17s installed\n", name+":")
	} else {
		ui.Plainf("  %-17s not installed\n", name+":")
	}
}
