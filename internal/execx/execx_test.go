package execx

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testRunner() Runner { return NewRunner(zerolog.Nop()) }

func TestOutputCaptures(t *testing.T) {
	r := testRunner()
	out, err := r.Output(context.Background(), Cmd{
		Path: "sh", Args: []string{"-c", "echo hello"}, Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("output: %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Fatalf("out = %q", out)
	}
}

func TestOutputStdin(t *testing.T) {
	r := testRunner()
	out, err := r.Output(context.Background(), Cmd{
		Path: "sh", Stdin: strings.NewReader("echo piped\n"), Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("output: %v", err)
	}
	if strings.TrimSpace(out) != "piped" {
		t.Fatalf("out = %q", out)
	}
}

func TestTimeoutDistinctFromExitFailure(t *testing.T) {
	r := testRunner()

	err := r.Quiet(context.Background(), Cmd{
		Path: "sleep", Args: []string{"5"}, Timeout: 100 * time.Millisecond,
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}

	err = r.Quiet(context.Background(), Cmd{
		Path: "sh", Args: []string{"-c", "exit 3"}, Timeout: 5 * time.Second,
	})
	if errors.Is(err, ErrTimeout) {
		t.Fatalf("exit failure misreported as timeout: %v", err)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if ExitCode(err) != 3 {
		t.Fatalf("exit code = %d", ExitCode(err))
	}
}

func TestExitCodeNonExitError(t *testing.T) {
	if ExitCode(errors.New("nope")) != -1 {
		t.Fatal("expected -1 for non-exit error")
	}
	if ExitCode(nil) != -1 {
		t.Fatal("expected -1 for nil error")
	}
}

func TestEnvOverride(t *testing.T) {
	r := testRunner()
	out, err := r.Output(context.Background(), Cmd{
		Path: "sh", Args: []string{"-c", "echo $CLOUDLAMMA_TEST_VAR"},
		Env:     map[string]string{"CLOUDLAMMA_TEST_VAR": "set"},
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("output: %v", err)
	}
	if strings.TrimSpace(out) != "set" {
		t.Fatalf("env not passed: %q", out)
	}
}
