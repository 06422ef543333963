package prefetch

// On x86-64 the hardware prefetchers make a software hint's effect
// unverifiable in isolation, so the best-rate-vs-baseline cross-check
// is always enforced, regardless of the configured method's own flag.
const alwaysCheckRate = true
