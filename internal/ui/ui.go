// Package ui renders the user-facing messages for the CLI. Every message
// carries one of four levels, each mapped to a styled prefix in the vein of
// the classic [+] / [!] / [?] markers.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Level classifies a user-facing message.
type Level int

const (
	Info Level = iota
	Warn
	Error
	Question
)

var (
	styleInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red
)

// prefix returns the rendered marker for a level. The switch is exhaustive
// over Level; unknown values fall back to Info.
func prefix(l Level) string {
	switch l {
	case Warn:
		return styleWarn.Render("[!]")
	case Error:
		return styleError.Render("[!]")
	case Question:
		return styleWarn.Render("[?]")
	default:
		return styleInfo.Render("[+]")
	}
}

// out is swappable so tests can capture output.
var out io.Writer = os.Stdout

// SetOutput redirects all ui output, returning a restore function.
func SetOutput(w io.Writer) func() {
	old := out
	out = w
	return func() { out = old }
}

// Output returns the current ui writer, for components that stream raw
// subprocess output to the user.
func Output() io.Writer { return out }

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Printf writes a message at the given level.
func Printf(l Level, format string, a ...any) {
	fmt.Fprintf(out, "%s %s\n", prefix(l), fmt.Sprintf(format, a...))
}

func Infof(format string, a ...any)  { Printf(Info, format, a...) }
func Warnf(format string, a ...any)  { Printf(Warn, format, a...) }
func Errorf(format string, a ...any) { Printf(Error, format, a...) }

// Plainf writes without a prefix, for raw pass-through lines.
func Plainf(format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
