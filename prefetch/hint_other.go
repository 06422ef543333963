//go:build !amd64 && !arm64

package prefetch

import "sync/atomic"

var fenceWord uint64

// memFence orders the calibration loop on architectures without a
// dedicated barrier here; an atomic load is the portable equivalent.
func memFence() {
	atomic.LoadUint64(&fenceWord)
}

func archMethods() []method {
	return nil
}

func archLoop(int) sweepFunc {
	return nil
}
