package prefetch

// Fixed-seed linear-congruential generator filling the benchmark buffer
// with a reproducible pattern. Two 32-bit draws make one 64-bit word;
// the wrapping sum of all words is the integrity baseline that verify
// mode recomputes on every measured pass.
const (
	lcgMul  uint32 = 16843009
	lcgAdd  uint32 = 826366247
	lcgSeed uint32 = 123456789
)

// fillPattern writes the deterministic workload into words and returns
// the checksum baseline.
func fillPattern(words []uint64) uint64 {
	seed := lcgSeed

	var checksum uint64

	for i := range words {
		seed = lcgMul*seed + lcgAdd
		val := uint64(seed)
		seed = lcgMul*seed + lcgAdd
		val |= uint64(seed) << 32

		words[i] = val
		checksum += val
	}

	return checksum
}
