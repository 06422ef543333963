package prefetch

// flusher evicts the benchmark buffer from the data cache so every
// trial starts cold. With a line-flush instruction the buffer is
// flushed directly; otherwise a scratch region of the same size is
// written through, displacing the buffer's lines.
type flusher struct {
	scratch []uint64
	tick    uint64
}

func newFlusher(n int) *flusher {
	f := &flusher{}
	if !haveLineFlush() {
		f.scratch = make([]uint64, n)
	}

	return f
}

func (f *flusher) flush(words []uint64) {
	if f.scratch == nil {
		flushLines(words)

		return
	}

	f.tick++
	for i := range f.scratch {
		f.scratch[i] = f.tick
	}

	memFence()
}
