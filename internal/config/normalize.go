package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeJoin()
	c.normalizeScan()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LockDir) == "" {
		c.Paths.LockDir = defaultLockDir()
	}
	if c.Paths.LockDir, err = expandPath(c.Paths.LockDir); err != nil {
		return fmt.Errorf("paths.lock_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.Flac = toolOrEnv(c.Tools.Flac, "SAMPLEKIT_FLAC", defaultFlacBinary)
	c.Tools.Sox = toolOrEnv(c.Tools.Sox, "SAMPLEKIT_SOX", defaultSoxBinary)
	c.Tools.FFmpeg = toolOrEnv(c.Tools.FFmpeg, "SAMPLEKIT_FFMPEG", defaultFFmpeg)
}

// toolOrEnv prefers the environment override, then the configured value.
func toolOrEnv(value, envKey, fallback string) string {
	if env, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(env) != "" {
		return strings.TrimSpace(env)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}

func (c *Config) normalizeJoin() {
	c.Join.Suffix = strings.TrimSpace(c.Join.Suffix)
	if c.Join.Suffix == "" {
		c.Join.Suffix = defaultSuffix
	}
	c.Join.StartMarker = strings.TrimSpace(c.Join.StartMarker)
	if c.Join.StartMarker == "" {
		c.Join.StartMarker = defaultStartMarker
	}
	c.Join.StopMarker = strings.TrimSpace(c.Join.StopMarker)
	if c.Join.StopMarker == "" {
		c.Join.StopMarker = defaultStopMarker
	}
	c.Join.TargetExt = strings.TrimSpace(c.Join.TargetExt)
	if c.Join.TargetExt == "" {
		c.Join.TargetExt = defaultTargetExt
	}
	if !strings.HasPrefix(c.Join.TargetExt, ".") {
		c.Join.TargetExt = "." + c.Join.TargetExt
	}
	c.Join.Joiner = strings.ToLower(strings.TrimSpace(c.Join.Joiner))
	if c.Join.Joiner == "" {
		c.Join.Joiner = JoinerSox
	}
	if c.Join.MaxWorkers <= 0 {
		c.Join.MaxWorkers = runtime.NumCPU()
	}
}

func (c *Config) normalizeScan() {
	c.Scan.Extension = strings.TrimSpace(c.Scan.Extension)
	if c.Scan.Extension == "" {
		c.Scan.Extension = defaultExtension
	}
	if !strings.HasPrefix(c.Scan.Extension, ".") {
		c.Scan.Extension = "." + c.Scan.Extension
	}
	c.Scan.OneshotDir = strings.TrimSpace(c.Scan.OneshotDir)
	if c.Scan.OneshotDir == "" {
		c.Scan.OneshotDir = defaultOneshotDir
	}
	dirs := make([]string, 0, len(c.Scan.SkipDirs))
	seen := make(map[string]struct{}, len(c.Scan.SkipDirs))
	for _, dir := range c.Scan.SkipDirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	c.Scan.SkipDirs = dirs
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
