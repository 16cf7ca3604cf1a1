package setup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sho-luv/cloudlamma/internal/config"
	"github.com/sho-luv/cloudlamma/internal/execx"
	"github.com/sho-luv/cloudlamma/internal/ui"
)

func testInstaller() *Installer {
	return NewInstaller(config.Default(), execx.NewRunner(zerolog.Nop()), zerolog.Nop())
}

func TestEnsureAlreadyPresent(t *testing.T) {
	in := testInstaller()
	called := false
	out, err := in.Ensure(context.Background(), "sh", false, func(context.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if out != OutcomeAlreadyPresent {
		t.Fatalf("outcome = %v", out)
	}
	if called {
		t.Fatal("installer invoked for present tool")
	}
}

func TestEnsureInstalls(t *testing.T) {
	in := testInstaller()
	calls := 0
	out, err := in.Ensure(context.Background(), "no-such-tool-abc", true, func(context.Context) error {
		calls++
		return nil
	})
	if err != nil || out != OutcomeInstalled {
		t.Fatalf("outcome = %v, err = %v", out, err)
	}
	if calls != 1 {
		t.Fatalf("install calls = %d", calls)
	}
}

func TestEnsureDeclined(t *testing.T) {
	restoreOut := ui.SetOutput(&bytes.Buffer{})
	defer restoreOut()
	restoreIn := ui.SetInput(strings.NewReader("n\n"))
	defer restoreIn()

	in := testInstaller()
	out, err := in.Ensure(context.Background(), "no-such-tool-abc", false, func(context.Context) error {
		t.Fatal("install must not run after decline")
		return nil
	})
	if err != nil || out != OutcomeDeclined {
		t.Fatalf("outcome = %v, err = %v", out, err)
	}
}

func TestEnsureFailureClasses(t *testing.T) {
	in := testInstaller()

	out, err := in.Ensure(context.Background(), "no-such-tool-abc", true, func(context.Context) error {
		return fmt.Errorf("%w: no manager", ErrUnsupportedPlatform)
	})
	if out != OutcomeUnsupportedPlatform || !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("outcome = %v, err = %v", out, err)
	}

	out, err = in.Ensure(context.Background(), "no-such-tool-abc", true, func(context.Context) error {
		return errors.New("dpkg exploded")
	})
	if out != OutcomeFailed || err == nil {
		t.Fatalf("outcome = %v, err = %v", out, err)
	}
}
