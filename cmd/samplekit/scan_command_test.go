package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"samplekit/internal/scan"
	"samplekit/internal/testsupport"
)

func seedConflictTree(t *testing.T, root string) {
	t.Helper()
	testsupport.Touch(t,
		filepath.Join(root, "01 Kick", "1 v1 36 Kick In.flac"),
		filepath.Join(root, "01 Kick", "1 v1 37 Kick In.flac"),
		filepath.Join(root, "02 Snare", "1 v1 38 Snare Top.flac"),
		filepath.Join(root, "02 Snare", "Reverbs", "hall.flac"),
		filepath.Join(root, "Oneshots", "Gong", "gong.flac"),
	)
}

func TestScanCommandTable(t *testing.T) {
	env := setupCLITestEnv(t)
	seedConflictTree(t, env.root)

	stdout, _, err := runCLI(t, []string{"scan", env.root}, env.configPath)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	for _, want := range []string{"01 Kick", "Kick", "36: In; 37: In", "3 samples, 1 one-shots, 1 skipped, 1 conflicts"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in output:\n%s", want, stdout)
		}
	}
	if !strings.HasSuffix(stdout, "done\n") {
		t.Fatalf("expected output to end with done, got %q", stdout)
	}
	if strings.Contains(stdout, "02 Snare") {
		t.Fatalf("did not expect snare conflict:\n%s", stdout)
	}
}

func TestScanCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	seedConflictTree(t, env.root)

	stdout, _, err := runCLI(t, []string{"scan", "--json", env.root}, env.configPath)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	var result scan.Result
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("decode json: %v\n%s", err, stdout)
	}
	if result.Samples != 3 || len(result.Conflicts) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Conflicts[0].Duplicates[0] != "In" {
		t.Fatalf("unexpected duplicates %v", result.Conflicts[0].Duplicates)
	}
}

func TestScanCommandNoConflicts(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.Touch(t, filepath.Join(env.root, "Kit", "1 v1 36 Kick In.flac"))

	stdout, _, err := runCLI(t, []string{"scan", "--json", env.root}, env.configPath)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !strings.Contains(stdout, `"conflicts": []`) {
		t.Fatalf("expected empty conflicts array, got %s", stdout)
	}
}

func TestScanCommandFailOnConflict(t *testing.T) {
	env := setupCLITestEnv(t)
	seedConflictTree(t, env.root)

	_, _, err := runCLI(t, []string{"scan", "--fail-on-conflict", env.root}, env.configPath)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported failure, got %v", err)
	}
}

func TestScanCommandMalformedName(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.Touch(t, filepath.Join(env.root, "Kit", "kick.flac"))

	_, _, err := runCLI(t, []string{"scan", env.root}, env.configPath)
	if !errors.Is(err, scan.ErrMalformedName) {
		t.Fatalf("expected ErrMalformedName, got %v", err)
	}
}
