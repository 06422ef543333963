package stressor

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// MaxMemLimit caps byte-size options at 16 TiB, well above any working
// set a single instance can map.
const MaxMemLimit uint64 = 1 << 44

// Settings is the typed option registry shared by the CLI and the
// stressors. Options are written once during configuration, before any
// instance starts, and read-only afterwards.
type Settings struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewSettings returns an empty settings registry.
func NewSettings() *Settings {
	return &Settings{values: map[string]any{}}
}

// Set stores a validated option value under key.
func (s *Settings) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
}

// Size returns a byte-count option, or false if unset.
func (s *Settings) Size(key string) (uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key].(uint64)

	return v, ok
}

// Text returns a string option, or false if unset.
func (s *Settings) Text(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key].(string)

	return v, ok
}

// ParseBytes parses a byte-size option such as "4096", "64k", "4m",
// "1g" or "2MiB". Suffixes are case-insensitive and use 1024 multiples.
func ParseBytes(s string) (uint64, error) {
	str := strings.TrimSpace(strings.ToLower(s))
	if str == "" {
		return 0, fmt.Errorf("empty size")
	}

	mult := uint64(1)

	for _, suffix := range []struct {
		text string
		mult uint64
	}{
		{"kib", 1 << 10}, {"kb", 1 << 10}, {"k", 1 << 10},
		{"mib", 1 << 20}, {"mb", 1 << 20}, {"m", 1 << 20},
		{"gib", 1 << 30}, {"gb", 1 << 30}, {"g", 1 << 30},
		{"tib", 1 << 40}, {"tb", 1 << 40}, {"t", 1 << 40},
		{"b", 1},
	} {
		if strings.HasSuffix(str, suffix.text) {
			mult = suffix.mult
			str = strings.TrimSuffix(str, suffix.text)

			break
		}
	}

	str = strings.TrimSpace(str)

	val, err := strconv.ParseFloat(str, 64)
	if err != nil || val < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}

	return uint64(val * float64(mult)), nil
}

// CheckRange validates that a byte-size option lies within [lo, hi].
func CheckRange(name string, v, lo, hi uint64) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s must be in the range %d to %d, got %d",
			name, lo, hi, v)
	}

	return nil
}
