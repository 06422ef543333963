// Package stream measures sustainable memory bandwidth with a triad
// kernel (a[i] = b[i] + scalar*c[i]) over a cache-sized working set.
package stream

import (
	"fmt"
	"log/slog"
	"time"
	"unsafe"

	"github.com/stressmark/stressmark/cache"
	"github.com/stressmark/stressmark/stressor"
)

const (
	minWorkingSet = 4 << 10
	maxWorkingSet = stressor.MaxMemLimit

	scalar = 3.0

	optSize = "stream-size"
)

func init() {
	stressor.Register(stressor.Info{
		Name:  "stream",
		Class: stressor.ClassCPU | stressor.ClassMemory,
		Opts: []stressor.Opt{
			{
				Name:  optSize,
				Usage: "working-set size for the triad kernel (e.g. 16m)",
				Set:   setSize,
			},
		},
		Run: run,
	})
}

func setSize(s *stressor.Settings, value string) error {
	size, err := stressor.ParseBytes(value)
	if err != nil {
		return fmt.Errorf("%s: %w", optSize, err)
	}

	if err := stressor.CheckRange(
		optSize, size, minWorkingSet, maxWorkingSet,
	); err != nil {
		return err
	}

	s.Set(optSize, size)

	return nil
}

func run(args *stressor.Args) error {
	size, _ := args.Settings.Size(optSize)
	size = cache.Resolve(size, cache.Detect(), args.Logger, args.Instance)

	// Three arrays share one mapping; together they form the working set.
	n := int(size) / (3 * 8)
	if n < 8 {
		n = 8
	}

	mapping, err := stressor.MapAnon(3 * n * 8)
	if err != nil {
		args.Logger.Info("cannot allocate stream buffers, skipping stressor",
			slog.Int("bytes", 3*n*8),
		)

		return fmt.Errorf("stream buffers: %w", stressor.ErrNoResource)
	}
	defer mapping.Release()

	fs := floatsOf(mapping.Data())
	a, b, c := fs[:n], fs[n:2*n], fs[2*n:3*n]

	for i := 0; i < n; i++ {
		b[i] = float64(i + 1)
		c[i] = float64(n - i)
	}

	if args.Instance == 0 {
		args.Logger.Info("running triad kernel",
			slog.Int("working_set_kb", 3*n*8>>10),
		)
	}

	args.SetState(stressor.StateRunning)

	var (
		moved float64
		busy  time.Duration
	)

	for {
		start := time.Now()
		for i := 0; i < n; i++ {
			a[i] = b[i] + scalar*c[i]
		}
		busy += time.Since(start)
		moved += float64(3 * n * 8)

		args.BogoInc()

		if !args.Continue() {
			break
		}
	}

	var failure error

	if args.Verify {
		for _, i := range []int{0, n / 2, n - 1} {
			want := b[i] + scalar*c[i]
			if a[i] != want {
				failure = fmt.Errorf("triad verification failed at %d: got %v, want %v",
					i, a[i], want)

				break
			}
		}
	}

	if busy > 0 {
		args.Metrics.Set(0, "MB per sec memory rate", moved/busy.Seconds()/1e6)
	}

	args.SetState(stressor.StateDeinit)

	return failure
}

func floatsOf(data []byte) []float64 {
	return unsafe.Slice((*float64)(unsafe.Pointer(&data[0])), len(data)/8)
}
