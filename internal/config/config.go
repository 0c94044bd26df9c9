package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"samplekit/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directories used for run bookkeeping.
type Paths struct {
	LockDir string `toml:"lock_dir"`
	LogDir  string `toml:"log_dir"`
}

// Tools names the external programs the join command drives.
type Tools struct {
	Flac   string `toml:"flac"`
	Sox    string `toml:"sox"`
	FFmpeg string `toml:"ffmpeg"`
}

// Join contains configuration for pairing and joining start/stop fragments.
type Join struct {
	Suffix        string `toml:"suffix"`
	StartMarker   string `toml:"start_marker"`
	StopMarker    string `toml:"stop_marker"`
	TargetExt     string `toml:"target_ext"`
	Joiner        string `toml:"joiner"`
	MaxWorkers    int    `toml:"max_workers"`
	RemoveSources bool   `toml:"remove_sources"`
	// Validate checks decoded fragment formats and the joined duration.
	Validate bool `toml:"validate"`
}

// Scan contains configuration for the sample conflict scanner.
type Scan struct {
	Extension  string   `toml:"extension"`
	SkipDirs   []string `toml:"skip_dirs"`
	OneshotDir string   `toml:"oneshot_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for samplekit.
//
// Configuration sections by subsystem:
//   - Paths: lock and log directories
//   - Tools: flac/sox/ffmpeg binaries
//   - Join: fragment naming convention and worker pool
//   - Scan: sample naming convention for conflict detection
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Tools   Tools   `toml:"tools"`
	Join    Join    `toml:"join"`
	Scan    Scan    `toml:"scan"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, services.Wrap(services.ErrNotFound, "config", "resolve", expanded, err)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("samplekit.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the lock directory. The log directory is only
// created when file logging is requested.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.LockDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LockDir, err)
	}
	return nil
}

// JoinerBinary returns the executable used by the configured joiner.
func (c *Config) JoinerBinary() string {
	if c.Join.Joiner == JoinerFFmpeg {
		return c.Tools.FFmpeg
	}
	return c.Tools.Sox
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultLockDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "samplekit", "locks")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/samplekit/locks"
	}
	return filepath.Join(home, ".cache", "samplekit", "locks")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
