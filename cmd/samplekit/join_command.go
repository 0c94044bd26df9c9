package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"samplekit/internal/audiotools"
	"samplekit/internal/config"
	"samplekit/internal/joining"
	"samplekit/internal/logging"
	"samplekit/internal/pairing"
	"samplekit/internal/preflight"
	"samplekit/internal/services"
)

type joinOptions struct {
	maxWorkers    int
	removeSources bool
	dryRun        bool
	joiner        string
	noValidate    bool
}

func newJoinCommand(ctx *commandContext) *cobra.Command {
	var opts joinOptions

	cmd := &cobra.Command{
		Use:   "join PATH",
		Short: "Join STA/STP fragment pairs into single FLAC files",
		Long: "Join finds every \"<name> STA\" and \"<name> STP\" fragment below PATH, " +
			"decodes both with flac, concatenates them and writes \"<name>.flac\" next to them. " +
			"Pairs whose target already exists are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := applyJoinFlags(cmd, *base, opts)
			if err != nil {
				return err
			}
			return runJoin(cmd, ctx, cfg, filepath.Clean(args[0]), opts.dryRun)
		},
	}

	cmd.Flags().IntVarP(&opts.maxWorkers, "max-workers", "n", 0, "Number of pairs processed in parallel (default: join.max_workers)")
	cmd.Flags().BoolVar(&opts.removeSources, "rm", false, "Delete both fragments after the joined file is written")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "List planned pairs without running any tool")
	cmd.Flags().StringVar(&opts.joiner, "joiner", "", "Joiner to use: sox or ffmpeg (default: join.joiner)")
	cmd.Flags().BoolVar(&opts.noValidate, "no-validate", false, "Skip WAV format and duration checks")
	return cmd
}

func applyJoinFlags(cmd *cobra.Command, cfg config.Config, opts joinOptions) (*config.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("max-workers") {
		if opts.maxWorkers <= 0 {
			return nil, fmt.Errorf("--max-workers must be positive, got %d", opts.maxWorkers)
		}
		cfg.Join.MaxWorkers = opts.maxWorkers
	}
	if flags.Changed("rm") {
		cfg.Join.RemoveSources = opts.removeSources
	}
	if flags.Changed("joiner") {
		cfg.Join.Joiner = strings.ToLower(strings.TrimSpace(opts.joiner))
	}
	if opts.noValidate {
		cfg.Join.Validate = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "join", "flags", "", err)
	}
	return &cfg, nil
}

func runJoin(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, root string, dryRun bool) error {
	runCtx := ctx.runContext(cmd)
	baseLogger, err := ctx.logger(cmd, cfg)
	if err != nil {
		return err
	}
	logger := logging.WithContext(runCtx, logging.NewComponentLogger(baseLogger, "join"))

	if !dryRun {
		if failed := preflight.Failed(preflight.RunAll(cfg, root)); len(failed) > 0 {
			return services.Wrap(services.ErrConfiguration, "join", "preflight", preflight.Summarize(failed), nil)
		}
		lock, err := joining.AcquireRootLock(cfg.Paths.LockDir, root)
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("failed to release root lock", logging.Error(err))
			}
		}()
	}

	plan, err := joining.BuildPlan(root, pairing.ConventionFromConfig(cfg))
	if err != nil {
		return err
	}
	logger.Info("fragments paired",
		logging.String("root", root),
		logging.Int("pairs", plan.Total()),
		logging.Int("pending", len(plan.Pending)),
		logging.Int("skipped", len(plan.Skipped)),
	)

	out := cmd.OutOrStdout()
	if dryRun {
		printJoinPlan(out, plan)
		return nil
	}
	if len(plan.Pending) == 0 {
		return nil
	}

	tools, err := audiotools.New(cfg, baseLogger)
	if err != nil {
		return err
	}
	job := joining.NewJob(cfg, tools, baseLogger)
	runner := joining.NewRunner(job, cfg.Join.MaxWorkers, baseLogger)

	colors := newPalette(out)
	runner.OnProgress(func(done, total int, pair pairing.Pair, err error) {
		fmt.Fprintln(out, progressLine(done, total, pair.Target, err, colors))
	})

	summary, runErr := runner.Run(runCtx, plan.Pending)
	if len(summary.Failures) > 0 {
		stderr := cmd.ErrOrStderr()
		for _, failure := range summary.Failures {
			fmt.Fprintln(stderr, failure.Error())
		}
	}
	if runErr != nil {
		return runErr
	}
	if len(summary.Failures) > 0 {
		return errReported
	}
	return nil
}

func progressLine(done, total int, target string, err error, colors palette) string {
	width := len(strconv.Itoa(total))
	status := colors.success("Success")
	if err != nil {
		status = colors.failure("ERROR")
	}
	return fmt.Sprintf("(%*d/%d)\t%s: %s", width, done, total, status, target)
}

func printJoinPlan(out io.Writer, plan joining.Plan) {
	rows := make([][]string, 0, plan.Total())
	for _, p := range plan.Pending {
		rows = append(rows, []string{p.Label(plan.Root), "pending", p.Target})
	}
	for _, p := range plan.Skipped {
		rows = append(rows, []string{p.Label(plan.Root), "skipped", p.Target})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable([]tableColumn{
			{title: "Pair"},
			{title: "Status"},
			{title: "Target", maxWidth: 80},
		}, rows))
	}
	fmt.Fprintf(out, "%d to join, %d already joined\n", len(plan.Pending), len(plan.Skipped))
}
