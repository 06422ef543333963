//go:build !amd64

package prefetch

func haveLineFlush() bool {
	return false
}

func flushLines([]uint64) {}
