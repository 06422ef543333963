package prefetch

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stressmark/stressmark/stressor"
)

func testArgs(t *testing.T, verify bool) *stressor.Args {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return stressor.NewArgs(
		context.Background(), "prefetch", 0, verify, 0,
		logger, stressor.NewSettings(),
	)
}

func TestFinalizeRates(t *testing.T) {
	samples := []offsetSample{
		{offset: 0, duration: time.Second, bytes: 2 * bytesPerGB},
		{offset: 64, duration: 0, bytes: 123456},
		{offset: 128, duration: 2 * time.Second, bytes: 2 * bytesPerGB},
	}

	finalizeRates(samples)

	if samples[0].rate != 2*bytesPerGB {
		t.Errorf("rate[0] = %v, want %v", samples[0].rate, 2*bytesPerGB)
	}
	if samples[1].rate != 0 {
		t.Errorf("zero-duration offset got rate %v", samples[1].rate)
	}
	if samples[2].rate != bytesPerGB {
		t.Errorf("rate[2] = %v, want %v", samples[2].rate, bytesPerGB)
	}
}

func TestBestOffsetStrictlyHighest(t *testing.T) {
	samples := []offsetSample{
		{offset: 0, rate: 1},
		{offset: 64, rate: 3},
		{offset: 128, rate: 3},
		{offset: 192, rate: 2},
	}

	// First seen wins ties.
	if best := bestOffset(samples); best != 1 {
		t.Errorf("best = %d, want 1", best)
	}
}

func TestBestOffsetSkipsUnbenchmarked(t *testing.T) {
	// A stopped-early run leaves later offsets with zero rate; they
	// must never be chosen over a benchmarked offset.
	samples := []offsetSample{
		{offset: 0, rate: 0, count: 0},
		{offset: 64, rate: 1.5, count: 2},
		{offset: 128, rate: 0, count: 0},
	}

	if best := bestOffset(samples); best != 1 {
		t.Errorf("best = %d, want 1", best)
	}
	if samples[bestOffset(samples)].count == 0 {
		t.Error("selected offset has zero invocations")
	}
}

func TestReportStatsMetricsSlots(t *testing.T) {
	args := testArgs(t, false)

	samples := []offsetSample{
		{offset: 0, rate: 2 * bytesPerGB, count: 1},
		{offset: 64, rate: 4 * bytesPerGB, count: 1},
	}

	if err := reportStats(args, samples, false); err != nil {
		t.Fatalf("reportStats failed: %v", err)
	}

	metrics := args.Metrics.All()
	if len(metrics) != 2 {
		t.Fatalf("got %d metrics, want 2", len(metrics))
	}

	if metrics[0].Slot != 0 || metrics[0].Value != 2 {
		t.Errorf("slot 0 = %+v, want non-prefetch rate 2 GB/s", metrics[0])
	}
	if metrics[1].Slot != 1 || metrics[1].Value != 4 {
		t.Errorf("slot 1 = %+v, want best rate 4 GB/s", metrics[1])
	}
}

func TestReportStatsCrossValidationFailure(t *testing.T) {
	// Non-accelerated baseline beats every accelerated offset: with
	// verification and cross-validation on, that is a failure.
	samples := []offsetSample{
		{offset: 0, rate: 8 * bytesPerGB, count: 1},
		{offset: 64, rate: 2 * bytesPerGB, count: 1},
		{offset: 128, rate: 3 * bytesPerGB, count: 1},
	}

	args := testArgs(t, true)
	if err := reportStats(args, samples, true); err == nil {
		t.Error("expected cross-validation failure")
	}

	// Without verification the same rates pass.
	args = testArgs(t, false)
	if err := reportStats(args, samples, true); err != nil {
		t.Errorf("unexpected failure with verify off: %v", err)
	}

	// Without the cross-check flag the same rates pass.
	args = testArgs(t, true)
	if err := reportStats(args, samples, false); err != nil {
		t.Errorf("unexpected failure with check off: %v", err)
	}
}

func TestReportStatsAllZeroRates(t *testing.T) {
	args := testArgs(t, true)

	samples := newOffsets()
	finalizeRates(samples)

	// A run that never benchmarked anything reports zero rates and
	// must not trip the cross-check.
	if err := reportStats(args, samples, true); err != nil {
		t.Errorf("zero-rate run failed: %v", err)
	}

	metrics := args.Metrics.All()
	if len(metrics) != 2 || metrics[0].Value != 0 || metrics[1].Value != 0 {
		t.Errorf("metrics = %+v, want two zero slots", metrics)
	}
}
