package prefetch

import (
	"runtime"
	"unsafe"
)

func haveLineFlush() bool {
	return hasSSE2()
}

// flushLines evicts every cache line of words with CLFLUSH, fenced so
// the flushes complete before timing starts.
func flushLines(words []uint64) {
	if len(words) == 0 {
		return
	}

	base := uintptr(unsafe.Pointer(&words[0]))
	end := base + uintptr(len(words))*8

	for p := base; p < end; p += cacheLineSize {
		clflushLine(p)
	}

	memFence()
	runtime.KeepAlive(words)
}
