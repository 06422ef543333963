// Package cache resolves the working-set size a stressor benchmarks
// against, from explicit configuration or live CPU cache topology, with
// a fixed fallback when neither is usable.
package cache

import (
	"log/slog"

	"github.com/klauspost/cpuid/v2"
)

// DefaultSize is used when no explicit size is configured and the
// topology cannot be determined.
const DefaultSize uint64 = 4 << 20

// Level is one cache level reported by topology discovery.
type Level struct {
	Level int
	Size  uint64
}

// Topology is the ordered list of data-cache levels, shallowest first.
type Topology []Level

// Detect queries the CPU for its data-cache sizes. It returns nil when
// the platform reports nothing usable.
func Detect() Topology {
	var topo Topology

	levels := []struct {
		level int
		size  int
	}{
		{1, cpuid.CPU.Cache.L1D},
		{2, cpuid.CPU.Cache.L2},
		{3, cpuid.CPU.Cache.L3},
	}

	for _, l := range levels {
		if l.size > 0 {
			topo = append(topo, Level{Level: l.level, Size: uint64(l.size)})
		}
	}

	return topo
}

// Resolve returns the buffer size to benchmark against. An explicit
// non-zero size wins. Otherwise the deepest discovered cache level is
// used, preferring L3; if discovery yields nothing, DefaultSize is
// substituted. Informational notices are emitted only by instance 0 so
// parallel instances do not repeat them.
func Resolve(
	explicit uint64,
	topo Topology,
	logger *slog.Logger,
	instance int,
) uint64 {
	if explicit != 0 {
		return explicit
	}

	first := instance == 0

	if len(topo) == 0 {
		if first {
			logger.Info("using built-in default, unable to determine cache details",
				slog.Uint64("default_bytes", DefaultSize),
			)
		}

		return DefaultSize
	}

	deepest := topo[len(topo)-1]
	if deepest.Size == 0 {
		if first {
			logger.Info("using built-in default, unable to determine cache size",
				slog.Uint64("default_bytes", DefaultSize),
			)
		}

		return DefaultSize
	}

	if deepest.Level < 3 && first {
		logger.Info("no L3 cache, using shallower level instead",
			slog.Int("level", deepest.Level),
		)
	}

	return deepest.Size
}
