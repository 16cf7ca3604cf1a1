package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrefixes(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Infof("hello %s", "world")
	Warnf("careful")
	Errorf("boom")
	Printf(Question, "sure?")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), buf.String())
	}
	want := []string{"[+] hello world", "[!] careful", "[!] boom", "[?] sure?"}
	for i, w := range want {
		if !strings.Contains(lines[i], w) {
			t.Errorf("line %d = %q, want contains %q", i, lines[i], w)
		}
	}
}

func TestConfirm(t *testing.T) {
	var buf bytes.Buffer
	restoreOut := SetOutput(&buf)
	defer restoreOut()

	cases := []struct {
		answer string
		want   bool
	}{
		{"\n", true},
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"nope\n", false},
	}
	for _, tc := range cases {
		restoreIn := SetInput(strings.NewReader(tc.answer))
		got := Confirm("install it?")
		restoreIn()
		if got != tc.want {
			t.Errorf("Confirm with %q = %v, want %v", strings.TrimSpace(tc.answer), got, tc.want)
		}
	}
	if !strings.Contains(buf.String(), "[?] install it? [Y/n]:") {
		t.Fatalf("prompt not rendered: %q", buf.String())
	}
}

func TestConfirmEOF(t *testing.T) {
	restoreOut := SetOutput(&bytes.Buffer{})
	defer restoreOut()
	restoreIn := SetInput(strings.NewReader(""))
	defer restoreIn()
	if Confirm("anyone there?") {
		t.Fatal("expected false on EOF")
	}
}
