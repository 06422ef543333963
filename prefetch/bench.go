package prefetch

import (
	"fmt"
	"time"
)

// sweepFunc traverses the first n words of the buffer in 8-word chunks,
// issuing the method's hint off words ahead of the read position. It
// returns the checksum of the words read plus any hint-touch
// accumulator that must stay live. One specialized loop exists per
// method so the hint is dispatched at configuration time, never inside
// the hot loop.
type sweepFunc func(words []uint64, n, off int) (sum, touched uint64)

// loopNone is the non-accelerated reference traversal used for offset 0.
func loopNone(words []uint64, n, off int) (uint64, uint64) {
	var sum uint64

	for i := 0; i < n; i += 8 {
		sum += words[i] + words[i+1] + words[i+2] + words[i+3]
		sum += words[i+4] + words[i+5] + words[i+6] + words[i+7]
	}

	return sum, 0
}

// loopBuiltin is the portable generic hint: a read touch of the target
// line. The locality-hinted builtin variants share it, since Go cannot
// express locality degrees portably.
func loopBuiltin(words []uint64, n, off int) (uint64, uint64) {
	var sum, touch uint64

	for i := 0; i < n; i += 8 {
		touch += words[i+off]
		sum += words[i] + words[i+1] + words[i+2] + words[i+3]
		sum += words[i+4] + words[i+5] + words[i+6] + words[i+7]
	}

	return sum, touch
}

// loopForMethod selects the specialized sweep for a method tag.
func loopForMethod(tag int) sweepFunc {
	if fn := archLoop(tag); fn != nil {
		return fn
	}

	return loopBuiltin
}

// bench holds the per-run state of the benchmark core loop. Every
// field, sink included, is owned exclusively by one instance; parallel
// instances share nothing mutable.
type bench struct {
	words    []uint64
	n        int
	loop     sweepFunc
	fl       *flusher
	method   string
	verify   bool
	baseline uint64

	// sink keeps benchmark-only values alive past dead-code
	// elimination.
	sink uint64
}

// offsetPass runs one calibrated trial for a single offset: flush,
// time an advance-and-barrier calibration loop, flush again, time the
// measured traversal with the hint applied at position+offset, then
// accumulate net duration, bytes and count. Calibration before
// measurement is a correctness requirement; both must start from the
// same flushed cache state.
func (b *bench) offsetPass(s *offsetSample) error {
	b.fl.flush(b.words[:b.n])

	i := 0
	start := time.Now()
	for i < b.n {
		i += 8
		memFence()
	}
	calibration := time.Since(start)
	b.sink += uint64(i)

	b.fl.flush(b.words[:b.n])

	loop := b.loop
	if s.offset == 0 {
		// Offset 0 is the non-accelerated reference and never hints.
		loop = loopNone
	}

	start = time.Now()
	checksum, touched := loop(b.words, b.n, s.offset/8)
	measured := time.Since(start)
	b.sink += checksum + touched

	if b.verify && checksum != b.baseline {
		return fmt.Errorf("%s method: checksum failure, got %#x, expected %#x",
			b.method, checksum, b.baseline)
	}

	s.bytes += float64(b.n * 8)
	s.duration += measured - calibration
	s.count++

	return nil
}
