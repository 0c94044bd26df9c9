package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateJoin(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateJoin() error {
	switch c.Join.Joiner {
	case JoinerSox, JoinerFFmpeg:
	default:
		return fmt.Errorf("join.joiner must be %q or %q, got %q", JoinerSox, JoinerFFmpeg, c.Join.Joiner)
	}
	if strings.EqualFold(c.Join.StartMarker, c.Join.StopMarker) {
		return errors.New("join.start_marker and join.stop_marker must differ")
	}
	if !strings.HasPrefix(c.Join.Suffix, ".") {
		return errors.New("join.suffix must start with a dot")
	}
	if strings.EqualFold(c.Join.Suffix, c.Join.TargetExt) {
		return errors.New("join.target_ext must differ from join.suffix")
	}
	if c.Join.MaxWorkers <= 0 {
		return errors.New("join.max_workers must be positive")
	}
	return nil
}

func (c *Config) validateScan() error {
	for _, dir := range c.Scan.SkipDirs {
		if strings.ContainsAny(dir, `/\`) {
			return fmt.Errorf("scan.skip_dirs entry %q must be a single directory name", dir)
		}
	}
	if strings.ContainsAny(c.Scan.OneshotDir, `/\`) {
		return fmt.Errorf("scan.oneshot_dir %q must be a single directory name", c.Scan.OneshotDir)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
