package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"samplekit/internal/config"
	"samplekit/internal/services"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "samplekit", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLock := filepath.Join(tempHome, ".cache", "samplekit", "locks")
	if cfg.Paths.LockDir != wantLock {
		t.Fatalf("unexpected lock dir: got %q want %q", cfg.Paths.LockDir, wantLock)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, ".local", "share", "samplekit", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Join.Suffix != ".ugrisample.flac" {
		t.Fatalf("unexpected suffix: %q", cfg.Join.Suffix)
	}
	if cfg.Join.StartMarker != "STA" || cfg.Join.StopMarker != "STP" {
		t.Fatalf("unexpected markers: %q/%q", cfg.Join.StartMarker, cfg.Join.StopMarker)
	}
	if cfg.Join.Joiner != config.JoinerSox {
		t.Fatalf("expected sox joiner by default, got %q", cfg.Join.Joiner)
	}
	if cfg.Join.MaxWorkers != runtime.NumCPU() {
		t.Fatalf("expected max workers to default to NumCPU, got %d", cfg.Join.MaxWorkers)
	}
	if cfg.Join.RemoveSources {
		t.Fatal("expected remove_sources disabled by default")
	}
	if !cfg.Join.Validate {
		t.Fatal("expected validation enabled by default")
	}
	if len(cfg.Scan.SkipDirs) != 1 || cfg.Scan.SkipDirs[0] != "Reverbs" {
		t.Fatalf("unexpected skip dirs: %v", cfg.Scan.SkipDirs)
	}
	if cfg.JoinerBinary() != "sox" {
		t.Fatalf("unexpected joiner binary: %q", cfg.JoinerBinary())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.LockDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected lock dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "samplekit.toml")

	type payload struct {
		Tools struct {
			Flac string `toml:"flac"`
		} `toml:"tools"`
		Join struct {
			Joiner     string `toml:"joiner"`
			MaxWorkers int    `toml:"max_workers"`
			TargetExt  string `toml:"target_ext"`
		} `toml:"join"`
		Scan struct {
			SkipDirs []string `toml:"skip_dirs"`
		} `toml:"scan"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Tools.Flac = "/opt/flac/bin/flac"
	custom.Join.Joiner = " FFmpeg "
	custom.Join.MaxWorkers = 3
	custom.Join.TargetExt = "flac"
	custom.Scan.SkipDirs = []string{"Reverbs", " ", "Rooms", "Reverbs"}
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Tools.Flac != "/opt/flac/bin/flac" {
		t.Fatalf("expected flac override, got %q", cfg.Tools.Flac)
	}
	if cfg.Join.Joiner != config.JoinerFFmpeg {
		t.Fatalf("expected joiner to normalize to ffmpeg, got %q", cfg.Join.Joiner)
	}
	if cfg.JoinerBinary() != "ffmpeg" {
		t.Fatalf("expected ffmpeg joiner binary, got %q", cfg.JoinerBinary())
	}
	if cfg.Join.MaxWorkers != 3 {
		t.Fatalf("expected 3 workers, got %d", cfg.Join.MaxWorkers)
	}
	if cfg.Join.TargetExt != ".flac" {
		t.Fatalf("expected target ext to gain a dot, got %q", cfg.Join.TargetExt)
	}
	if strings.Join(cfg.Scan.SkipDirs, ",") != "Reverbs,Rooms" {
		t.Fatalf("unexpected skip dirs: %v", cfg.Scan.SkipDirs)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json format, got %q", cfg.Logging.Format)
	}
}

func TestToolEnvironmentOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("SAMPLEKIT_FLAC", "/usr/local/bin/flac")
	t.Setenv("SAMPLEKIT_SOX", " /usr/local/bin/sox ")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Tools.Flac != "/usr/local/bin/flac" {
		t.Fatalf("expected flac from env, got %q", cfg.Tools.Flac)
	}
	if cfg.Tools.Sox != "/usr/local/bin/sox" {
		t.Fatalf("expected sox from env, got %q", cfg.Tools.Sox)
	}
	if cfg.Tools.FFmpeg != "ffmpeg" {
		t.Fatalf("expected default ffmpeg, got %q", cfg.Tools.FFmpeg)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"unknown joiner", func(c *config.Config) { c.Join.Joiner = "shntool" }, "join.joiner"},
		{"same markers", func(c *config.Config) { c.Join.StopMarker = "sta" }, "must differ"},
		{"suffix without dot", func(c *config.Config) { c.Join.Suffix = "ugrisample.flac" }, "join.suffix"},
		{"target equals suffix", func(c *config.Config) { c.Join.TargetExt = ".UGRISAMPLE.flac" }, "join.target_ext"},
		{"zero workers", func(c *config.Config) { c.Join.MaxWorkers = 0 }, "join.max_workers"},
		{"nested skip dir", func(c *config.Config) { c.Scan.SkipDirs = []string{"a/b"} }, "scan.skip_dirs"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.toml")
	_, _, _, err := config.Load(missing)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for %s, got %v", missing, err)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Fatalf("expected path in error, got %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "samplekit.toml")
	if err := os.WriteFile(configPath, []byte("[join]\nworkers = 4\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected parse error for unknown key")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Join.MaxWorkers != runtime.NumCPU() {
		t.Fatalf("expected max_workers = 0 to mean NumCPU, got %d", cfg.Join.MaxWorkers)
	}
}
