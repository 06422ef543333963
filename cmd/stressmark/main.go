// Package main provides the CLI entry point for stressmark, a pluggable
// hardware stress and benchmark harness.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stressmark/stressmark/prefetch"
	"github.com/stressmark/stressmark/report"
	"github.com/stressmark/stressmark/stressor"
	_ "github.com/stressmark/stressmark/stream"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "stressmark:", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "stressmark",
		Short: "Pluggable hardware stress and benchmark harness",
		Long: `Stressmark drives CPU, cache, and memory subsystems to saturation
with pluggable stressors, measuring throughput and validating correctness
along the way.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newListCmd())

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		name       string
		instances  int
		ops        uint64
		timeout    time.Duration
		verify     bool
		outputJSON bool
	)

	settings := stressor.NewSettings()
	optVals := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a stressor",
		Long: `Run the parallel instances of one stressor until the bogo-op or
time limit is reached, then print per-instance results and metrics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, ok := stressor.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown stressor %q, available: %s",
					name, strings.Join(stressorNames(), " "))
			}

			// Validate stressor options before anything starts; a bad
			// method name or out-of-range size never reaches RUNNING.
			for _, opt := range info.Opts {
				if cmd.Flags().Changed(opt.Name) {
					if err := opt.Set(settings, *optVals[opt.Name]); err != nil {
						return err
					}
				}
			}

			if ops == 0 && timeout == 0 {
				timeout = 10 * time.Second
			}

			runner := stressor.NewRunner(info, settings, logger)
			results := runner.Run(cmd.Context(), stressor.RunConfig{
				Instances: instances,
				MaxOps:    ops,
				Timeout:   timeout,
				Verify:    verify,
			})

			if outputJSON {
				if err := report.GenerateJSON(os.Stdout, results); err != nil {
					return fmt.Errorf("generate JSON report: %w", err)
				}
			} else {
				if err := report.Generate(os.Stdout, results); err != nil {
					return fmt.Errorf("generate report: %w", err)
				}
			}

			for _, res := range results {
				if res.Status == stressor.StatusFailure {
					return fmt.Errorf("%s instance %d failed: %s",
						res.Stressor, res.Instance, res.Error)
				}
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "stressor", "prefetch",
		"Stressor to run")
	flags.IntVar(&instances, "instances", 1,
		"Parallel instances to start")
	flags.Uint64Var(&ops, "ops", 0,
		"Stop after N bogo operations per instance (0 = no limit)")
	flags.DurationVar(&timeout, "timeout", 0,
		"Stop after this run time (default 10s when --ops is unset)")
	flags.BoolVar(&verify, "verify", false,
		"Verify workload integrity and prefetch effectiveness")
	flags.BoolVar(&outputJSON, "json", false,
		"Output results as JSON instead of a table")

	for _, info := range stressor.All() {
		for _, opt := range info.Opts {
			optVals[opt.Name] = flags.String(opt.Name, "", opt.Usage)
		}
	}

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available stressors and their options",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			for _, info := range stressor.All() {
				fmt.Fprintf(w, "%s (%s)\n", info.Name, info.Class)
				for _, opt := range info.Opts {
					fmt.Fprintf(w, "  --%s\t%s\n", opt.Name, opt.Usage)
				}
			}

			fmt.Fprintf(w, "\nprefetch methods: %s\n",
				strings.Join(prefetch.MethodNames(), " "))

			return nil
		},
	}
}

func stressorNames() []string {
	infos := stressor.All()

	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}

	return names
}
