package stressor

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RunConfig holds parameters for one harness execution of a stressor.
type RunConfig struct {
	Instances int
	MaxOps    uint64
	Timeout   time.Duration
	Verify    bool
}

// Result holds the outcome of a single stressor instance.
type Result struct {
	Stressor  string   `json:"stressor"`
	Instance  int      `json:"instance"`
	Status    Status   `json:"status"`
	BogoOps   uint64   `json:"bogo_ops"`
	ElapsedMs int64    `json:"elapsed_ms"`
	Metrics   []Metric `json:"metrics,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// Runner drives the parallel instances of one stressor through their
// lifecycle. Instances are independent units of execution: each owns
// its buffer, metrics, and statistics exclusively, so the runner only
// fans out, waits, and collects.
type Runner struct {
	info     Info
	settings *Settings
	logger   *slog.Logger
}

// NewRunner creates a Runner for a registered stressor.
func NewRunner(info Info, settings *Settings, logger *slog.Logger) *Runner {
	return &Runner{
		info:     info,
		settings: settings,
		logger:   logger,
	}
}

// Run executes cfg.Instances parallel instances and returns one Result
// per instance, ordered by instance index. A stop request via timeout
// or context is honored between sweeps; buffer cleanup is the
// stressor's own deferred duty on every exit path.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) []Result {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	instances := cfg.Instances
	if instances < 1 {
		instances = 1
	}

	r.logger.Info("starting stressor",
		slog.String("stressor", r.info.Name),
		slog.Int("instances", instances),
	)

	results := make([]Result, instances)

	var wg sync.WaitGroup
	for i := 0; i < instances; i++ {
		wg.Add(1)

		go func(instance int) {
			defer wg.Done()

			results[instance] = r.runInstance(ctx, cfg, instance)
		}(i)
	}

	wg.Wait()

	return results
}

func (r *Runner) runInstance(
	ctx context.Context,
	cfg RunConfig,
	instance int,
) Result {
	args := NewArgs(
		ctx, r.info.Name, instance, cfg.Verify, cfg.MaxOps,
		r.logger, r.settings,
	)
	args.SetState(StateConfigured)

	start := time.Now()
	err := r.info.Run(args)
	elapsed := time.Since(start)

	status := StatusFor(err)

	switch status {
	case StatusSkipped:
		args.Logger.Info("stressor skipped",
			slog.String("reason", err.Error()),
		)
	case StatusFailure:
		args.Logger.Error("stressor failed",
			slog.String("error", err.Error()),
		)
	default:
		args.Logger.Info("stressor finished",
			slog.Uint64("bogo_ops", args.BogoOps()),
			slog.Duration("elapsed", elapsed),
		)
	}

	result := Result{
		Stressor:  r.info.Name,
		Instance:  instance,
		Status:    status,
		BogoOps:   args.BogoOps(),
		ElapsedMs: elapsed.Milliseconds(),
		Metrics:   args.Metrics.All(),
	}
	if err != nil {
		result.Error = err.Error()
	}

	return result
}
