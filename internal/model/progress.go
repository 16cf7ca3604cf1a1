package model

import (
	"fmt"
	"io"
	"strings"
)

// progressPrinter collapses the repetitive "pulling manifest" lines emitted
// during a pull into a single in-place indicator. Every other distinct line
// prints once, and the indicator line always ends with a newline before a
// dissimilar line appears, so output never interleaves mid-line.
type progressPrinter struct {
	w             io.Writer
	lastLine      string
	manifestCount int
}

const manifestLine = "pulling manifest"

func (p *progressPrinter) Line(line string) {
	line = strings.TrimSpace(line)

	if line == manifestLine {
		p.manifestCount++
		if p.manifestCount == 1 {
			fmt.Fprintf(p.w, "Pulling manifest%s\r", dots(p.manifestCount, 3))
		} else if p.manifestCount%5 == 0 {
			// advance the indicator every 5th repeat
			fmt.Fprintf(p.w, "Pulling manifest%s\r", dots(p.manifestCount/5, 10))
		}
		return
	}

	if line == "" || line == p.lastLine {
		return
	}
	if p.manifestCount > 0 {
		fmt.Fprintln(p.w)
		p.manifestCount = 0
	}
	fmt.Fprintln(p.w, line)
	p.lastLine = line
}

// Flush terminates a dangling indicator line.
func (p *progressPrinter) Flush() {
	if p.manifestCount > 0 {
		fmt.Fprintln(p.w)
		p.manifestCount = 0
	}
}

func dots(n, max int) string {
	if n > max {
		n = max
	}
	return strings.Repeat(".", n)
}
