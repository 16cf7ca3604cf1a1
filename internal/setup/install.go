package setup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sho-luv/cloudlamma/internal/config"
	"github.com/sho-luv/cloudlamma/internal/execx"
	"github.com/sho-luv/cloudlamma/internal/ui"
)

// ErrUnsupportedPlatform reports a host with no usable package manager or an
// architecture without a packaged artifact. No retry can make progress.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Outcome is the result taxonomy every install path reduces to.
type Outcome int

const (
	OutcomeInstalled Outcome = iota
	OutcomeAlreadyPresent
	OutcomeDeclined
	OutcomeUnsupportedPlatform
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInstalled:
		return "installed"
	case OutcomeAlreadyPresent:
		return "already present"
	case OutcomeDeclined:
		return "declined"
	case OutcomeUnsupportedPlatform:
		return "unsupported platform"
	default:
		return "failed"
	}
}

// Installer drives install sequences through the detected package manager.
type Installer struct {
	cfg config.Config
	run execx.Runner
	log zerolog.Logger
}

// NewInstaller returns an Installer bound to the given configuration.
func NewInstaller(cfg config.Config, run execx.Runner, log zerolog.Logger) *Installer {
	return &Installer{cfg: cfg, run: run, log: log.With().Str("component", "setup").Logger()}
}

// Ensure checks for the executable and, when absent, prompts (unless
// assumeYes) and installs it via install.
func (in *Installer) Ensure(ctx context.Context, name string, assumeYes bool, install func(context.Context) error) (Outcome, error) {
	if IsInstalled(name) {
		return OutcomeAlreadyPresent, nil
	}
	if !assumeYes && !ui.Confirm(fmt.Sprintf("%s not found. Install it?", name)) {
		return OutcomeDeclined, nil
	}
	if err := install(ctx); err != nil {
		if errors.Is(err, ErrUnsupportedPlatform) {
			return OutcomeUnsupportedPlatform, err
		}
		return OutcomeFailed, err
	}
	return OutcomeInstalled, nil
}

// Ollama installs the Ollama server: brew where available, otherwise the
// upstream install script on apt systems.
func (in *Installer) Ollama(ctx context.Context) error {
	ui.Infof("Installing Ollama...")
	switch DetectPackageManager() {
	case PMBrew:
		return in.run.Run(ctx, execx.Cmd{
			Path: "brew", Args: []string{"install", "ollama"}, Timeout: in.cfg.InstallTimeout,
		})
	case PMApt:
		if err := in.maybeSudo(ctx, in.cfg.UpdateTimeout, "apt", "update"); err != nil {
			return err
		}
		ui.Warnf("Ollama is not available in the default apt repositories. Installing via install script...")
		script, err := in.run.Output(ctx, execx.Cmd{
			Path: "curl", Args: []string{"-fsSL", "https://ollama.com/install.sh"},
			Timeout: in.cfg.DownloadTimeout,
		})
		if err != nil {
			return fmt.Errorf("fetch install script: %w", err)
		}
		return in.run.Run(ctx, execx.Cmd{
			Path: "sh", Stdin: strings.NewReader(script), Timeout: in.cfg.InstallTimeout,
		})
	default:
		return fmt.Errorf("%w: please install Ollama manually from https://ollama.com/", ErrUnsupportedPlatform)
	}
}

// Cloudflared installs the tunnel client: brew where available, otherwise a
// per-architecture .deb artifact on apt systems, followed by config
// generation and host service registration.
func (in *Installer) Cloudflared(ctx context.Context) error {
	ui.Infof("Installing cloudflared...")
	switch DetectPackageManager() {
	case PMBrew:
		return in.run.Run(ctx, execx.Cmd{
			Path: "brew", Args: []string{"install", "cloudflared"}, Timeout: in.cfg.InstallTimeout,
		})
	case PMApt:
		if err := in.maybeSudo(ctx, in.cfg.UpdateTimeout, "apt", "update"); err != nil {
			return err
		}
		arch, err := in.run.Output(ctx, execx.Cmd{
			Path: "uname", Args: []string{"-m"}, Timeout: in.cfg.HealthTimeout,
		})
		if err != nil {
			return fmt.Errorf("query architecture: %w", err)
		}
		arch = strings.TrimSpace(arch)
		url, ok := CloudflaredDebURL(arch)
		if !ok {
			return fmt.Errorf("%w: no cloudflared package for architecture %q; install manually from https://github.com/cloudflare/cloudflared/releases", ErrUnsupportedPlatform, arch)
		}
		deb := filepath.Join(os.TempDir(), "cloudflared.deb")
		defer func() {
			if rmErr := os.Remove(deb); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				in.log.Debug().Err(rmErr).Msg("remove download artifact")
			}
		}()
		if err := in.run.Run(ctx, execx.Cmd{
			Path: "curl", Args: []string{"-L", "--output", deb, url}, Timeout: in.cfg.DownloadTimeout,
		}); err != nil {
			return fmt.Errorf("download cloudflared: %w", err)
		}
		if err := in.maybeSudo(ctx, in.cfg.ServiceTimeout, "dpkg", "-i", deb); err != nil {
			return fmt.Errorf("install cloudflared package: %w", err)
		}
		return in.configureCloudflared(ctx)
	default:
		return fmt.Errorf("%w: please install cloudflared manually from https://github.com/cloudflare/cloudflared/releases", ErrUnsupportedPlatform)
	}
}

// maybeSudo runs a command under sudo unless already root or sudo is absent.
func (in *Installer) maybeSudo(ctx context.Context, timeout time.Duration, name string, args ...string) error {
	if os.Geteuid() != 0 && IsInstalled("sudo") {
		args = append([]string{name}, args...)
		name = "sudo"
	}
	return in.run.Run(ctx, execx.Cmd{Path: name, Args: args, Timeout: timeout})
}
