package prefetch

import "unsafe"

// PRFM prefetch hints: PLDL1KEEP for loads that stay resident,
// PLDL1STRM for streaming loads that should not pollute the cache.
// Bodies live in hint_arm64.s.

func prefetchKeep(addr uintptr)
func prefetchStrm(addr uintptr)
func memFence()

func archMethods() []method {
	return []method{
		{name: "pldl1keep", tag: tagPLDL1Keep, available: alwaysAvailable, checkRate: true},
		{name: "pldl1strm", tag: tagPLDL1Strm, available: alwaysAvailable, checkRate: true},
	}
}

func archLoop(tag int) sweepFunc {
	switch tag {
	case tagPLDL1Keep:
		return loopKeep
	case tagPLDL1Strm:
		return loopStrm
	default:
		return nil
	}
}

func loopKeep(words []uint64, n, off int) (uint64, uint64) {
	var sum uint64

	for i := 0; i < n; i += 8 {
		prefetchKeep(uintptr(unsafe.Pointer(&words[i+off])))
		sum += words[i] + words[i+1] + words[i+2] + words[i+3]
		sum += words[i+4] + words[i+5] + words[i+6] + words[i+7]
	}

	return sum, 0
}

func loopStrm(words []uint64, n, off int) (uint64, uint64) {
	var sum uint64

	for i := 0; i < n; i += 8 {
		prefetchStrm(uintptr(unsafe.Pointer(&words[i+off])))
		sum += words[i] + words[i+1] + words[i+2] + words[i+3]
		sum += words[i+4] + words[i+5] + words[i+6] + words[i+7]
	}

	return sum, 0
}
