// Package modelname validates model identifiers before they reach any
// subprocess argument list.
package modelname

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxLen is the default upper bound on a model name.
const MaxLen = 100

// ErrInvalidName reports a model name that failed validation.
var ErrInvalidName = fmt.Errorf("invalid model name")

var namePattern = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)

// dangerous lists shell metacharacters rejected outright, even though the
// pattern above would not admit them. Defense in depth: the name is always
// passed as a discrete argv element, never through a shell.
const dangerous = ";&|`$()<>\"'\\\n\r"

// Valid reports whether name is a safe, well-formed model identifier.
func Valid(name string, maxLen int) bool {
	if name == "" {
		return false
	}
	if strings.ContainsAny(name, dangerous) {
		return false
	}
	if !namePattern.MatchString(name) {
		return false
	}
	if len(name) > maxLen {
		return false
	}
	return true
}

// Sanitize validates name and returns it trimmed of surrounding whitespace.
// The trimmed form always re-validates, so Sanitize is idempotent.
func Sanitize(name string, maxLen int) (string, error) {
	if !Valid(name, maxLen) {
		return "", fmt.Errorf("%w: %q (letters, numbers, dots, dashes, underscores and colons only)", ErrInvalidName, name)
	}
	return strings.TrimSpace(name), nil
}
