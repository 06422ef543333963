package stressor

import (
	"strings"
	"testing"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"512", 512},
		{"4096", 4096},
		{"4k", 4 << 10},
		{"4K", 4 << 10},
		{"64kb", 64 << 10},
		{"2KiB", 2 << 10},
		{"4m", 4 << 20},
		{"32MiB", 32 << 20},
		{"1g", 1 << 30},
		{"1.5g", 3 << 29},
		{"1t", 1 << 40},
		{"128b", 128},
		{" 8k ", 8 << 10},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBytes(tt.in)
			if err != nil {
				t.Fatalf("ParseBytes(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseBytesInvalid(t *testing.T) {
	for _, in := range []string{"", "x", "-4k", "4q", "k", "4 4k"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseBytes(in); err == nil {
				t.Errorf("ParseBytes(%q) succeeded, want error", in)
			}
		})
	}
}

func TestCheckRange(t *testing.T) {
	if err := CheckRange("size", 4096, 4096, 1<<20); err != nil {
		t.Errorf("lower bound rejected: %v", err)
	}
	if err := CheckRange("size", 1<<20, 4096, 1<<20); err != nil {
		t.Errorf("upper bound rejected: %v", err)
	}

	err := CheckRange("size", 100, 4096, 1<<20)
	if err == nil {
		t.Fatal("below-range value accepted")
	}
	if !strings.Contains(err.Error(), "size") {
		t.Errorf("error %q does not name the option", err)
	}

	if err := CheckRange("size", 2<<20, 4096, 1<<20); err == nil {
		t.Error("above-range value accepted")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := NewSettings()

	if _, ok := s.Size("absent"); ok {
		t.Error("Size reported a value for an unset key")
	}

	s.Set("buf-size", uint64(4096))
	got, ok := s.Size("buf-size")
	if !ok || got != 4096 {
		t.Errorf("Size = %d, %v, want 4096, true", got, ok)
	}

	s.Set("method", "builtin")
	text, ok := s.Text("method")
	if !ok || text != "builtin" {
		t.Errorf("Text = %q, %v, want builtin, true", text, ok)
	}

	// Mismatched type lookups report absent.
	if _, ok := s.Size("method"); ok {
		t.Error("Size returned a string-typed value")
	}
}

func TestMetricsSlots(t *testing.T) {
	var m Metrics

	m.Set(1, "best rate", 2.5)
	m.Set(0, "baseline rate", 1.25)
	m.Set(0, "baseline rate", 1.5)

	all := m.All()
	if len(all) != 2 {
		t.Fatalf("got %d metrics, want 2", len(all))
	}
	if all[0].Slot != 0 || all[0].Value != 1.5 {
		t.Errorf("slot 0 = %+v, want overwritten value 1.5", all[0])
	}
	if all[1].Slot != 1 || all[1].Label != "best rate" {
		t.Errorf("slot 1 = %+v", all[1])
	}
}
