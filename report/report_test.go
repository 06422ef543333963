package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stressmark/stressmark/stressor"
)

func sampleResults() []stressor.Result {
	return []stressor.Result{
		{
			Stressor:  "prefetch",
			Instance:  0,
			Status:    stressor.StatusSuccess,
			BogoOps:   42,
			ElapsedMs: 1500,
			Metrics: []stressor.Metric{
				{Slot: 0, Label: "GB per sec non-prefetch read rate", Value: 3.5},
				{Slot: 1, Label: "GB per sec best read rate", Value: 4.25},
			},
		},
		{
			Stressor:  "prefetch",
			Instance:  1,
			Status:    stressor.StatusSuccess,
			BogoOps:   40,
			ElapsedMs: 900,
		},
	}
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer

	if err := Generate(&buf, sampleResults()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	out := buf.String()

	for _, want := range []string{
		"## Stress Results",
		"Run: **ok**",
		"| prefetch | 0 | success | 42 | 1.50s |",
		"| prefetch | 1 | success | 40 | 900ms |",
		"GB per sec best read rate | 4.25",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateFailure(t *testing.T) {
	results := []stressor.Result{
		{
			Stressor: "prefetch",
			Status:   stressor.StatusFailure,
			Error:    "checksum failure, got 0x1, expected 0x2",
		},
	}

	var buf bytes.Buffer
	if err := Generate(&buf, results); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "FAILED") {
		t.Error("failure summary missing")
	}
	if !strings.Contains(out, "checksum failure") {
		t.Error("failure diagnostic missing")
	}
}

func TestGenerateAllSkipped(t *testing.T) {
	results := []stressor.Result{
		{Stressor: "prefetch", Status: stressor.StatusSkipped},
	}

	var buf bytes.Buffer
	if err := Generate(&buf, results); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(buf.String(), "all instances skipped") {
		t.Error("skip summary missing")
	}
}

func TestGenerateEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, nil); err == nil {
		t.Error("expected error for empty results")
	}
}

func TestGenerateJSON(t *testing.T) {
	var buf bytes.Buffer

	if err := GenerateJSON(&buf, sampleResults()); err != nil {
		t.Fatalf("GenerateJSON failed: %v", err)
	}

	var decoded []stressor.Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(decoded) != 2 {
		t.Fatalf("got %d results, want 2", len(decoded))
	}
	if decoded[0].Stressor != "prefetch" || decoded[0].BogoOps != 42 {
		t.Errorf("decoded[0] = %+v", decoded[0])
	}
}
