package prefetch

import (
	"unsafe"

	"github.com/klauspost/cpuid/v2"
)

// x86 software prefetch instructions. Bodies live in hint_amd64.s; one
// specialized sweep loop exists per instruction so the selected variant
// is fixed when the run is configured.

func prefetchT0(addr uintptr)
func prefetchT1(addr uintptr)
func prefetchT2(addr uintptr)
func prefetchNTA(addr uintptr)
func clflushLine(addr uintptr)
func memFence()

func hasSSE() bool {
	return cpuid.CPU.Supports(cpuid.SSE)
}

func hasSSE2() bool {
	return cpuid.CPU.Supports(cpuid.SSE2)
}

func archMethods() []method {
	return []method{
		{name: "prefetcht0", tag: tagPrefetchT0, available: hasSSE, checkRate: true},
		{name: "prefetcht1", tag: tagPrefetchT1, available: hasSSE, checkRate: true},
		{name: "prefetcht2", tag: tagPrefetchT2, available: hasSSE, checkRate: true},
		{name: "prefetchnta", tag: tagPrefetchNTA, available: hasSSE, checkRate: true},
	}
}

func archLoop(tag int) sweepFunc {
	switch tag {
	case tagPrefetchT0:
		return loopT0
	case tagPrefetchT1:
		return loopT1
	case tagPrefetchT2:
		return loopT2
	case tagPrefetchNTA:
		return loopNTA
	default:
		return nil
	}
}

func loopT0(words []uint64, n, off int) (uint64, uint64) {
	var sum uint64

	for i := 0; i < n; i += 8 {
		prefetchT0(uintptr(unsafe.Pointer(&words[i+off])))
		sum += words[i] + words[i+1] + words[i+2] + words[i+3]
		sum += words[i+4] + words[i+5] + words[i+6] + words[i+7]
	}

	return sum, 0
}

func loopT1(words []uint64, n, off int) (uint64, uint64) {
	var sum uint64

	for i := 0; i < n; i += 8 {
		prefetchT1(uintptr(unsafe.Pointer(&words[i+off])))
		sum += words[i] + words[i+1] + words[i+2] + words[i+3]
		sum += words[i+4] + words[i+5] + words[i+6] + words[i+7]
	}

	return sum, 0
}

func loopT2(words []uint64, n, off int) (uint64, uint64) {
	var sum uint64

	for i := 0; i < n; i += 8 {
		prefetchT2(uintptr(unsafe.Pointer(&words[i+off])))
		sum += words[i] + words[i+1] + words[i+2] + words[i+3]
		sum += words[i+4] + words[i+5] + words[i+6] + words[i+7]
	}

	return sum, 0
}

func loopNTA(words []uint64, n, off int) (uint64, uint64) {
	var sum uint64

	for i := 0; i < n; i += 8 {
		prefetchNTA(uintptr(unsafe.Pointer(&words[i+off])))
		sum += words[i] + words[i+1] + words[i+2] + words[i+3]
		sum += words[i+4] + words[i+5] + words[i+6] + words[i+7]
	}

	return sum, 0
}
