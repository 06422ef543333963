//go:build !amd64

package prefetch

// Other architectures cross-check only when the method asks for it.
const alwaysCheckRate = false
