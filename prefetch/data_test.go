package prefetch

import "testing"

func TestFillPatternDeterministic(t *testing.T) {
	a := make([]uint64, 512)
	b := make([]uint64, 512)

	sumA := fillPattern(a)
	sumB := fillPattern(b)

	if sumA != sumB {
		t.Errorf("checksums differ: %#x vs %#x", sumA, sumB)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("word %d differs: %#x vs %#x", i, a[i], b[i])
		}
	}
}

func TestFillPatternChecksum(t *testing.T) {
	words := make([]uint64, 1024)
	baseline := fillPattern(words)

	var sum uint64
	for _, w := range words {
		sum += w
	}

	if sum != baseline {
		t.Errorf("recomputed sum %#x != baseline %#x", sum, baseline)
	}
}

func TestFillPatternNotConstant(t *testing.T) {
	words := make([]uint64, 64)
	fillPattern(words)

	for i := 1; i < len(words); i++ {
		if words[i] != words[0] {
			return
		}
	}

	t.Error("generator produced a constant pattern")
}
