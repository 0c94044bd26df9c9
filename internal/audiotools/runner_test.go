package audiotools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStderrTailKeepsLastLines(t *testing.T) {
	out := "one\n\ntwo\nthree\nfour\nfive\nsix\n"
	if got := stderrTail(out, 3); got != "four | five | six" {
		t.Fatalf("stderrTail = %q", got)
	}
	if got := stderrTail("  \n", 3); got != "" {
		t.Fatalf("expected empty tail, got %q", got)
	}
}

func TestDefaultCommandRunnerCapturesStderr(t *testing.T) {
	script := filepath.Join(t.TempDir(), "failing")
	body := "#!/bin/sh\necho 'bad input' >&2\nexit 3\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	err := defaultCommandRunner(context.Background(), script)
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(err.Error(), "bad input") || !strings.Contains(err.Error(), "exit status 3") {
		t.Fatalf("unexpected error %v", err)
	}
}
