package audiotools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"samplekit/internal/config"
	"samplekit/internal/logging"
	"samplekit/internal/media/wavprobe"
	"samplekit/internal/services"
)

// Toolchain runs flac and the configured joiner.
type Toolchain struct {
	logger *slog.Logger
	flac   string
	joiner Joiner
	run    CommandRunner
}

// New builds a toolchain from the tools and join sections of cfg.
func New(cfg *config.Config, logger *slog.Logger) (*Toolchain, error) {
	if cfg == nil {
		return nil, errors.New("audiotools: config is required")
	}
	joiner, err := NewJoiner(cfg.Join.Joiner, cfg.Tools)
	if err != nil {
		return nil, err
	}
	return &Toolchain{
		logger: logging.NewComponentLogger(logger, "audiotools"),
		flac:   cfg.Tools.Flac,
		joiner: joiner,
		run:    defaultCommandRunner,
	}, nil
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (t *Toolchain) WithCommandRunner(r CommandRunner) {
	if t != nil && r != nil {
		t.run = r
	}
}

// Joiner returns the configured joiner.
func (t *Toolchain) Joiner() Joiner {
	return t.joiner
}

// Decode converts a FLAC fragment to WAV, keeping foreign metadata chunks.
func (t *Toolchain) Decode(ctx context.Context, src, dst string) error {
	return t.invoke(ctx, "decode", t.flac,
		"--keep-foreign-metadata-if-present", "--silent",
		"-d", "-f", "-o", dst, "--", src,
	)
}

// Encode compresses a WAV file to FLAC at the highest level and verifies the result.
func (t *Toolchain) Encode(ctx context.Context, src, dst string) error {
	return t.invoke(ctx, "encode", t.flac,
		"--keep-foreign-metadata-if-present", "--silent",
		"--best", "--verify", "-f", "-o", dst, "--", src,
	)
}

// Join concatenates first and second into output, keeping the sample size
// of first when its header can be read.
func (t *Toolchain) Join(ctx context.Context, first, second, output string) error {
	var bitDepth int
	if info, err := wavprobe.Inspect(first); err == nil {
		bitDepth = info.BitDepth
	} else {
		logging.WithContext(ctx, t.logger).Debug("join input not probed", logging.Error(err))
	}
	return t.invoke(ctx, "join", t.joiner.Binary(), t.joiner.Args(first, second, output, bitDepth)...)
}

func (t *Toolchain) invoke(ctx context.Context, operation, binary string, args ...string) error {
	logger := logging.WithContext(ctx, t.logger)
	logger.Debug("running external tool",
		logging.String(logging.FieldTool, binary),
		logging.String("operation", operation),
		logging.String("args", strings.Join(args, " ")),
	)
	if err := t.run(ctx, binary, args...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return services.Wrap(services.ErrExternalTool, "audiotools", operation, fmt.Sprintf("%s failed", binary), err)
	}
	return nil
}
