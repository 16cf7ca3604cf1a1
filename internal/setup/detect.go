// Package setup installs the external tools this CLI orchestrates: the
// Ollama server and the cloudflared tunnel client.
package setup

import "os/exec"

// PackageManager identifies the host's package manager.
type PackageManager int

const (
	PMNone PackageManager = iota
	PMBrew
	PMApt
)

func (pm PackageManager) String() string {
	switch pm {
	case PMBrew:
		return "brew"
	case PMApt:
		return "apt"
	default:
		return "none"
	}
}

// IsInstalled reports whether an executable is on the search path.
func IsInstalled(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// DetectPackageManager probes the search path for a supported manager,
// preferring brew over apt to match macOS hosts that carry both.
func DetectPackageManager() PackageManager {
	if IsInstalled("brew") {
		return PMBrew
	}
	if IsInstalled("apt") {
		return PMApt
	}
	return PMNone
}
