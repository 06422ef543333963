package stressor

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Mapping is a private anonymous memory mapping owned by exactly one
// stressor instance for the lifetime of its run. It is never resized.
type Mapping struct {
	data     []byte
	released bool
}

// MapAnon allocates a zero-filled private anonymous mapping of n bytes.
// Failure is a resource-exhaustion condition, not a harness failure;
// callers report it as a skip via ErrNoResource.
func MapAnon(n int) (*Mapping, error) {
	if n <= 0 {
		return nil, fmt.Errorf("map %d bytes: size must be positive", n)
	}

	data, err := unix.Mmap(-1, 0, n,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON|mapPopulate)
	if err != nil {
		return nil, fmt.Errorf("map %d bytes: %w", n, err)
	}

	return &Mapping{data: data}, nil
}

// Data returns the mapped region.
func (m *Mapping) Data() []byte {
	return m.data
}

// Release unmaps the region. It is safe to call more than once; only
// the first call unmaps.
func (m *Mapping) Release() error {
	if m.released {
		return nil
	}

	m.released = true
	data := m.data
	m.data = nil

	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("unmap: %w", err)
	}

	return nil
}

// Released reports whether the mapping has been returned to the OS.
func (m *Mapping) Released() bool {
	return m.released
}
