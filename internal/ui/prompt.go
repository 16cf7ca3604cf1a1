package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// in is swappable so tests can feed answers.
var in io.Reader = os.Stdin

// SetInput redirects prompt input, returning a restore function.
func SetInput(r io.Reader) func() {
	old := in
	in = r
	return func() { in = old }
}

// Confirm asks a yes/no question. An empty answer counts as yes.
func Confirm(message string) bool {
	fmt.Fprintf(out, "%s %s [Y/n]: ", prefix(Question), message)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}
