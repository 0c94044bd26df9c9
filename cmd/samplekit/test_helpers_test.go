package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"samplekit/internal/config"
	"samplekit/internal/testsupport"
)

const flacStub = `out=""
src=""
while [ $# -gt 0 ]; do
  case "$1" in
    -o) out="$2"; shift ;;
    --) src="$2"; shift ;;
  esac
  shift
done
case "$src" in
  *Broken*) echo "ERROR: while decoding metadata" >&2; exit 1 ;;
esac
cp "$src" "$out"
`

const soxStub = `shift
cat "$1" "$2" > "$3"
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	root       string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithStubScripts(map[string]string{
		"flac": flacStub,
		"sox":  soxStub,
	}))
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	configPath := filepath.Join(base, "samplekit.toml")
	writeTestConfig(t, configPath, cfg)

	root := filepath.Join(base, "library")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir root: %v", err)
	}
	return &cliTestEnv{cfg: cfg, configPath: configPath, root: root}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nlock_dir = %q\nlog_dir = %q\n\n[join]\nmax_workers = 1\nvalidate = false\n\n[logging]\nlevel = \"warn\"\n",
		cfg.Paths.LockDir,
		cfg.Paths.LogDir,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFragment(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fragment: %v", err)
	}
}
