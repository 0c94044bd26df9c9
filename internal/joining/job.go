package joining

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"samplekit/internal/config"
	"samplekit/internal/fileutil"
	"samplekit/internal/logging"
	"samplekit/internal/media/wavprobe"
	"samplekit/internal/pairing"
	"samplekit/internal/services"
)

// Tools is the subset of the audio toolchain a Job drives.
type Tools interface {
	Decode(ctx context.Context, src, dst string) error
	Encode(ctx context.Context, src, dst string) error
	Join(ctx context.Context, first, second, output string) error
}

// Job converts one pair into its target.
type Job struct {
	tools         Tools
	logger        *slog.Logger
	tempRoot      string
	validate      bool
	removeSources bool
}

// JobOption customizes a Job.
type JobOption func(*Job)

// WithTempRoot places per-pair scratch directories under dir.
func WithTempRoot(dir string) JobOption {
	return func(j *Job) {
		j.tempRoot = dir
	}
}

// NewJob builds a Job from the join section of cfg.
func NewJob(cfg *config.Config, tools Tools, logger *slog.Logger, opts ...JobOption) *Job {
	job := &Job{
		tools:  tools,
		logger: logging.NewComponentLogger(logger, "joiner"),
	}
	if cfg != nil {
		job.validate = cfg.Join.Validate
		job.removeSources = cfg.Join.RemoveSources
	}
	for _, opt := range opts {
		opt(job)
	}
	return job
}

// Process decodes both fragments, joins them, encodes the result and installs
// it at pair.Target. Scratch files are removed on every path.
func (j *Job) Process(ctx context.Context, pair pairing.Pair) error {
	logger := logging.WithContext(ctx, j.logger)

	scratch, err := os.MkdirTemp(j.tempRoot, "samplekit-join-*")
	if err != nil {
		return services.Wrap(services.ErrFilesystem, "joiner", "create scratch dir", "", err)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			logger.Warn("failed to remove scratch dir", logging.String("dir", scratch), logging.Error(err))
		}
	}()

	startWAV := filepath.Join(scratch, "start.wav")
	stopWAV := filepath.Join(scratch, "stop.wav")
	joinedWAV := filepath.Join(scratch, "joined.wav")
	joinedFLAC := filepath.Join(scratch, "joined.flac")

	if err := j.tools.Decode(ctx, pair.Start, startWAV); err != nil {
		return err
	}
	if err := j.tools.Decode(ctx, pair.Stop, stopWAV); err != nil {
		return err
	}

	var parts []wavprobe.Info
	if j.validate {
		parts, err = inspectFragments(startWAV, stopWAV)
		if err != nil {
			return err
		}
	}

	if err := j.tools.Join(ctx, startWAV, stopWAV, joinedWAV); err != nil {
		return err
	}

	if j.validate {
		joined, err := wavprobe.Inspect(joinedWAV)
		if err != nil {
			return services.Wrap(services.ErrValidation, "joiner", "inspect joined", "", err)
		}
		if err := wavprobe.CheckJoined(joined, parts...); err != nil {
			return services.Wrap(services.ErrValidation, "joiner", "check joined", "", err)
		}
		logger.Debug("joined audio validated",
			logging.Int("sample_rate", joined.SampleRate),
			logging.Int("channels", joined.Channels),
			logging.Duration("duration", joined.Duration()),
		)
	}

	if err := j.tools.Encode(ctx, joinedWAV, joinedFLAC); err != nil {
		return err
	}
	if err := fileutil.InstallFile(joinedFLAC, pair.Target); err != nil {
		return services.Wrap(services.ErrFilesystem, "joiner", "install target", pair.Target, err)
	}
	logger.Debug("target installed", logging.String("target", pair.Target))

	if j.removeSources {
		if err := fileutil.RemoveAll(pair.Start, pair.Stop); err != nil {
			return services.Wrap(services.ErrFilesystem, "joiner", "remove fragments", "", err)
		}
		logger.Debug("fragments removed")
	}
	return nil
}

func inspectFragments(startWAV, stopWAV string) ([]wavprobe.Info, error) {
	start, err := wavprobe.Inspect(startWAV)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "joiner", "inspect start", "", err)
	}
	stop, err := wavprobe.Inspect(stopWAV)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "joiner", "inspect stop", "", err)
	}
	if err := wavprobe.CheckCompatible(start, stop); err != nil {
		return nil, services.Wrap(services.ErrValidation, "joiner", "check formats", "", err)
	}
	return []wavprobe.Info{start, stop}, nil
}
