// Package prefetch benchmarks memory prefetching: it sweeps a fixed set
// of prefetch distances over a cache-sized buffer with a configurable
// hint method, measures calibrated read throughput per distance, and
// reports the non-prefetch and best prefetch rates.
package prefetch

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/stressmark/stressmark/cache"
	"github.com/stressmark/stressmark/stressor"
)

const (
	minBufferSize = 4 << 10
	maxBufferSize = stressor.MaxMemLimit

	// 128 offsets spaced one cache line apart, offset 0 being the
	// non-accelerated reference.
	offsetCount   = 128
	cacheLineSize = 64
)

const (
	optL3Size = "prefetch-l3-size"
	optMethod = "prefetch-method"
)

func init() {
	stressor.Register(stressor.Info{
		Name:  "prefetch",
		Class: stressor.ClassCPU | stressor.ClassCPUCache | stressor.ClassMemory,
		Opts: []stressor.Opt{
			{
				Name:  optL3Size,
				Usage: "L3 cache size to benchmark against (e.g. 4m)",
				Set:   setL3Size,
			},
			{
				Name:  optMethod,
				Usage: "prefetch method to issue ahead of each read",
				Set:   setMethod,
			},
		},
		Run: run,
	})
}

func setL3Size(s *stressor.Settings, value string) error {
	size, err := stressor.ParseBytes(value)
	if err != nil {
		return fmt.Errorf("%s: %w", optL3Size, err)
	}

	if err := stressor.CheckRange(
		optL3Size, size, minBufferSize, maxBufferSize,
	); err != nil {
		return err
	}

	s.Set(optL3Size, size)

	return nil
}

func setMethod(s *stressor.Settings, value string) error {
	idx, err := LookupMethod(value)
	if err != nil {
		return err
	}

	s.Set(optMethod, uint64(idx))

	return nil
}

// Indirections overridden in tests.
var (
	mapAnon      = stressor.MapAnon
	fillWorkload = fillPattern
)

// run executes one prefetch stressor instance: validate the method,
// resolve the buffer size, generate the workload once, then benchmark
// every offset per sweep until the harness stops the run or a
// correctness violation aborts it.
func run(args *stressor.Args) error {
	var methodIdx uint64
	if v, ok := args.Settings.Size(optMethod); ok {
		methodIdx = v
	}

	return runMethod(args, methods[methodIdx])
}

func runMethod(args *stressor.Args, m method) error {
	if !m.available() {
		args.Logger.Info("prefetch method not available on this CPU, skipping stressor",
			slog.String("method", m.name),
		)

		return fmt.Errorf("prefetch-method %q: %w", m.name, stressor.ErrNoResource)
	}

	size, _ := args.Settings.Size(optL3Size)
	size = cache.Resolve(size, cache.Detect(), args.Logger, args.Instance)

	// Pad the mapping so the largest offset can hint past the end of
	// the traversed region.
	mapSize := size + offsetCount*cacheLineSize

	mapping, err := mapAnon(int(mapSize))
	if err != nil {
		args.Logger.Info("cannot allocate benchmark buffer, skipping stressor",
			slog.Uint64("bytes", mapSize),
		)

		return fmt.Errorf("benchmark buffer: %w", stressor.ErrNoResource)
	}
	defer mapping.Release()

	words := wordsOf(mapping.Data())
	n := int(size/8) &^ 7
	baseline := fillWorkload(words[:n])

	if args.Instance == 0 {
		args.Logger.Info("benchmarking prefetch offsets",
			slog.Uint64("buffer_kb", size>>10),
			slog.String("method", m.name),
		)
	}

	samples := newOffsets()
	b := &bench{
		words:    words,
		n:        n,
		loop:     loopForMethod(m.tag),
		fl:       newFlusher(n),
		method:   m.name,
		verify:   args.Verify,
		baseline: baseline,
	}

	args.SetState(stressor.StateRunning)

	var failure error

	for {
		for i := range samples {
			if err := b.offsetPass(&samples[i]); err != nil {
				failure = err

				break
			}
		}

		args.BogoInc()

		if failure != nil || !args.Continue() {
			break
		}
	}

	finalizeRates(samples)

	err = reportStats(args, samples, alwaysCheckRate || m.checkRate)
	if err != nil && failure == nil {
		failure = err
	}

	args.SetState(stressor.StateDeinit)

	return failure
}

func wordsOf(data []byte) []uint64 {
	return unsafe.Slice((*uint64)(unsafe.Pointer(&data[0])), len(data)/8)
}
