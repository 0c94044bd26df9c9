package joining

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"samplekit/internal/logging"
	"samplekit/internal/pairing"
	"samplekit/internal/services"
)

// Processor handles one pair. *Job implements it.
type Processor interface {
	Process(ctx context.Context, pair pairing.Pair) error
}

// ProgressFunc is called once per finished pair in completion order. done
// counts finished pairs including this one.
type ProgressFunc func(done, total int, pair pairing.Pair, err error)

// Failure couples a pair with the error that stopped it.
type Failure struct {
	Pair pairing.Pair
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Pair.Target, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Summary reports the outcome of a run.
type Summary struct {
	Total     int
	Started   int
	Succeeded int
	Failures  []Failure
	Elapsed   time.Duration
}

// Err joins every failure, or returns nil.
func (s Summary) Err() error {
	if len(s.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(s.Failures))
	for _, failure := range s.Failures {
		errs = append(errs, failure)
	}
	return errors.Join(errs...)
}

// Runner processes pairs on a bounded pool of workers.
type Runner struct {
	processor Processor
	workers   int
	logger    *slog.Logger
	progress  ProgressFunc
}

// NewRunner returns a runner with the given pool size. A non-positive size
// uses one worker per CPU.
func NewRunner(processor Processor, workers int, logger *slog.Logger) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{
		processor: processor,
		workers:   workers,
		logger:    logging.NewComponentLogger(logger, "runner"),
	}
}

// OnProgress registers the progress callback.
func (r *Runner) OnProgress(fn ProgressFunc) {
	r.progress = fn
}

// Run processes every pair. A failing pair does not stop the others. When ctx
// is canceled no further pairs are started, in-flight pairs are allowed to
// observe the cancellation, and the context error is returned alongside the
// partial summary.
func (r *Runner) Run(ctx context.Context, pairs []pairing.Pair) (Summary, error) {
	started := time.Now()
	summary := Summary{Total: len(pairs)}

	var (
		mu   sync.Mutex
		done int
	)
	var g errgroup.Group
	g.SetLimit(r.workers)

	logger := logging.WithContext(ctx, r.logger)
	logger.Info("join run started",
		logging.Int("pairs", len(pairs)),
		logging.Int("workers", r.workers),
	)

	for _, pair := range pairs {
		if ctx.Err() != nil {
			break
		}
		summary.Started++
		g.Go(func() error {
			pairCtx := services.WithPair(ctx, pair.Name)
			err := r.processor.Process(pairCtx, pair)

			mu.Lock()
			defer mu.Unlock()
			done++
			if err != nil {
				summary.Failures = append(summary.Failures, Failure{Pair: pair, Err: err})
				logging.ErrorWithContext(logging.WithContext(pairCtx, r.logger), "pair failed", "join_failed",
					logging.Error(err),
					logging.String("failure_kind", services.FailureKind(err)),
				)
			} else {
				summary.Succeeded++
			}
			if r.progress != nil {
				r.progress(done, len(pairs), pair, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	summary.Elapsed = time.Since(started)
	logger.Info("join run finished",
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", len(summary.Failures)),
		logging.Duration("elapsed", summary.Elapsed),
	)
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}
