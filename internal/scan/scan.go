package scan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"samplekit/internal/config"
	"samplekit/internal/discovery"
	"samplekit/internal/logging"
	"samplekit/internal/services"
)

// Options control which files are considered.
type Options struct {
	Extension  string
	SkipDirs   []string
	OneshotDir string
}

// OptionsFromConfig extracts the scan section of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	return Options{
		Extension:  cfg.Scan.Extension,
		SkipDirs:   append([]string(nil), cfg.Scan.SkipDirs...),
		OneshotDir: cfg.Scan.OneshotDir,
	}
}

// Result summarizes one scan.
type Result struct {
	Root      string     `json:"root"`
	Samples   int        `json:"samples"`
	Oneshots  int        `json:"oneshots"`
	Skipped   int        `json:"skipped"`
	Conflicts []Conflict `json:"conflicts"`
	Index     Index      `json:"-"`
}

// Scanner walks a sample tree.
type Scanner struct {
	opts   Options
	logger *slog.Logger
}

// New returns a scanner.
func New(opts Options, logger *slog.Logger) *Scanner {
	return &Scanner{opts: opts, logger: logging.NewComponentLogger(logger, "scan")}
}

// Scan indexes every sample under root and computes conflicts. A root that is
// a file is scanned relative to its directory.
func (s *Scanner) Scan(ctx context.Context, root string) (Result, error) {
	logger := logging.WithContext(ctx, s.logger)
	files, err := discovery.AllFiles(root)
	if err != nil {
		return Result{}, services.Wrap(services.ErrNotFound, "scan", "discover", root, err)
	}
	base := root
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		base = filepath.Dir(root)
	}

	result := Result{Root: root, Index: Index{}}
	for _, path := range files.Sorted() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if filepath.Ext(path) != s.opts.Extension {
			continue
		}
		if slices.Contains(s.opts.SkipDirs, filepath.Base(filepath.Dir(path))) {
			result.Skipped++
			logger.Debug("skipping sample", logging.String("path", path))
			continue
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return Result{}, services.Wrap(services.ErrFilesystem, "scan", "relative path", path, err)
		}
		if s.isOneshot(rel) {
			if err := checkAlone(path, rel); err != nil {
				return Result{}, err
			}
			result.Oneshots++
			continue
		}
		sample, err := ParseName(rel)
		if err != nil {
			return Result{}, err
		}
		result.Index.Add(filepath.Dir(rel), sample)
		result.Samples++
	}
	result.Conflicts = result.Index.Conflicts()
	logger.Info("scan complete",
		logging.Int("samples", result.Samples),
		logging.Int("oneshots", result.Oneshots),
		logging.Int("conflicts", len(result.Conflicts)),
	)
	return result, nil
}

func (s *Scanner) isOneshot(rel string) bool {
	if s.opts.OneshotDir == "" {
		return false
	}
	for dir := filepath.Dir(rel); dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		if strings.EqualFold(filepath.Base(dir), s.opts.OneshotDir) {
			return true
		}
	}
	return false
}

func checkAlone(path, rel string) error {
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		return services.Wrap(services.ErrFilesystem, "scan", "read one-shot dir", rel, err)
	}
	if len(entries) != 1 {
		msg := fmt.Sprintf("%s shares its directory with %d other entries", rel, len(entries)-1)
		return services.Wrap(services.ErrValidation, "scan", "check one-shot", msg, ErrOneshotNotAlone)
	}
	return nil
}
