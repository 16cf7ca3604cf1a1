// Package execx is the single place subprocesses are launched from. Every
// invocation carries an explicit upper bound on its runtime, and timeout
// expiry is reported distinctly from a non-zero exit.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
)

// ErrTimeout marks a command that ran past its deadline, as opposed to one
// the tool itself rejected.
var ErrTimeout = errors.New("command timed out")

// Cmd describes one subprocess invocation.
type Cmd struct {
	Path        string
	Args        []string
	Env         map[string]string // additional env vars
	Dir         string            // working directory
	Stdin       io.Reader         // optional stdin feed
	Interactive bool              // inherit the caller's stdio
	Timeout     time.Duration     // 0 means no bound (callers should set one)
}

// Runner executes commands and logs each invocation.
type Runner struct {
	log zerolog.Logger
}

// NewRunner returns a Runner that logs through the given logger.
func NewRunner(log zerolog.Logger) Runner {
	return Runner{log: log}
}

func (r Runner) build(ctx context.Context, c Cmd) (*exec.Cmd, context.Context, context.CancelFunc) {
	cancel := func() {}
	if c.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
	}
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	cmd.Env = os.Environ()
	for k, v := range c.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	if c.Stdin != nil {
		cmd.Stdin = c.Stdin
	}
	r.log.Debug().Str("cmd", c.Path).Strs("args", c.Args).Dur("timeout", c.Timeout).Msg("exec")
	return cmd, ctx, cancel
}

// finish translates a command result, mapping deadline expiry to ErrTimeout
// and passing exit failures through unchanged for the retry layer.
func finish(ctx context.Context, c Cmd, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() == context.DeadlineExceeded || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w after %s", c.Path, ErrTimeout, c.Timeout)
	}
	// an interrupt kills the child; report the cancellation, not the kill
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return fmt.Errorf("%s: %w", c.Path, err)
}

// Run executes the command to completion. Interactive commands inherit the
// caller's terminal; everything else writes through to stdout/stderr.
func (r Runner) Run(ctx context.Context, c Cmd) error {
	cmd, runCtx, cancel := r.build(ctx, c)
	defer cancel()
	if c.Interactive && c.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return finish(runCtx, c, cmd.Run())
}

// Quiet executes the command discarding its output.
func (r Runner) Quiet(ctx context.Context, c Cmd) error {
	cmd, runCtx, cancel := r.build(ctx, c)
	defer cancel()
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return finish(runCtx, c, cmd.Run())
}

// Output executes the command and returns its captured stdout.
func (r Runner) Output(ctx context.Context, c Cmd) (string, error) {
	cmd, runCtx, cancel := r.build(ctx, c)
	defer cancel()
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	err := finish(runCtx, c, cmd.Run())
	if err != nil {
		r.log.Debug().Str("cmd", c.Path).Str("stderr", errBuf.String()).Msg("exec failed")
	}
	return out.String(), err
}

// ExitCode extracts the exit status from an error, or -1 when the error does
// not carry one.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
