package prefetch

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/stressmark/stressmark/stressor"
)

// offsetSample accumulates the per-offset statistics across benchmark
// iterations. Samples are zero-initialized before the run, mutated in
// place on every iteration, and read-only once the run loop ends.
type offsetSample struct {
	offset   int
	count    uint64
	duration time.Duration
	bytes    float64
	rate     float64
}

func newOffsets() []offsetSample {
	samples := make([]offsetSample, offsetCount)
	for i := range samples {
		samples[i].offset = i * cacheLineSize
	}

	return samples
}

// finalizeRates derives the per-offset throughput. Offsets that never
// accumulated time keep rate 0 and cannot be selected as best.
func finalizeRates(samples []offsetSample) {
	for i := range samples {
		if samples[i].duration > 0 {
			samples[i].rate = samples[i].bytes / samples[i].duration.Seconds()
		} else {
			samples[i].rate = 0
		}
	}
}

// bestOffset returns the offset with the strictly highest rate; the
// first seen wins ties.
func bestOffset(samples []offsetSample) int {
	best := 0
	bestRate := 0.0

	for i := range samples {
		if samples[i].rate > bestRate {
			bestRate = samples[i].rate
			best = i
		}
	}

	return best
}

const bytesPerGB = float64(1 << 30)

// reportStats emits the throughput metrics (slot 0 = non-prefetch rate,
// slot 1 = best rate, both GB/s) and cross-validates the best rate
// against the non-prefetch baseline when verification demands it.
func reportStats(
	args *stressor.Args,
	samples []offsetSample,
	checkRate bool,
) error {
	best := bestOffset(samples)

	nonPrefetchRate := samples[0].rate / bytesPerGB
	args.Metrics.Set(0, "GB per sec non-prefetch read rate", nonPrefetchRate)

	bestRate := samples[best].rate / bytesPerGB

	var latencyNs float64
	if samples[best].rate > 0 {
		latencyNs = 1e9 * float64(samples[best].offset) / samples[best].rate
	}

	args.Logger.Debug("best prefetch read rate",
		slog.Float64("gb_per_sec", bestRate),
		slog.Int("offset", samples[best].offset),
		slog.Float64("latency_ns", latencyNs),
	)

	args.Metrics.Set(1, "GB per sec best read rate", bestRate)

	if args.Verify && checkRate && bestRate < nonPrefetchRate {
		return fmt.Errorf(
			"non-prefetch rate %.2f GB per sec higher than best prefetch rate %.2f GB per sec",
			nonPrefetchRate, bestRate)
	}

	return nil
}
