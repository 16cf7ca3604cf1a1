// Package retry wraps fallible operations in bounded exponential backoff.
package retry

import (
	"errors"
	"net"
	"net/url"
	"os/exec"
	"time"

	"github.com/sho-luv/cloudlamma/internal/config"
	"github.com/sho-luv/cloudlamma/internal/ui"
)

// sleepFn is swappable so tests can observe delays without waiting.
var sleepFn = time.Sleep

// notifyFn announces an upcoming retry. Swappable for tests.
var notifyFn = func(attempt, max int, wait time.Duration) {
	ui.Warnf("Operation failed (attempt %d/%d), retrying in %.1fs...", attempt, max, wait.Seconds())
}

// recoverable reports whether an error class is worth retrying: network
// failures and non-zero subprocess exits. Anything else propagates
// immediately.
func recoverable(err error) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// Do runs op up to cfg.MaxAttempts times. Between attempts it sleeps
// Delay * Backoff^i (zero-based attempt index) and emits a warning. The final
// attempt's error is returned unchanged.
func Do[T any](cfg config.RetryConfig, op func() (T, error)) (T, error) {
	var zero T
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	var err error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		var v T
		v, err = op()
		if err == nil {
			return v, nil
		}
		if !recoverable(err) {
			return zero, err
		}
		if attempt == cfg.MaxAttempts-1 {
			break
		}
		wait := backoff(cfg, attempt)
		notifyFn(attempt+1, cfg.MaxAttempts, wait)
		sleepFn(wait)
	}
	return zero, err
}

func backoff(cfg config.RetryConfig, attempt int) time.Duration {
	wait := float64(cfg.Delay)
	for i := 0; i < attempt; i++ {
		wait *= cfg.Backoff
	}
	return time.Duration(wait)
}
