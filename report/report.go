// Package report formats stressor results into comparison tables.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/stressmark/stressmark/stressor"
)

// Generate writes a markdown summary for the given results.
func Generate(w io.Writer, results []stressor.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to report")
	}

	var failed, skipped int
	for _, r := range results {
		switch r.Status {
		case stressor.StatusFailure:
			failed++
		case stressor.StatusSkipped:
			skipped++
		}
	}

	fmt.Fprintln(w, "## Stress Results")
	fmt.Fprintln(w)

	switch {
	case failed > 0:
		fmt.Fprintf(w, "Run: **%d instance(s) FAILED**\n", failed)
	case skipped == len(results):
		fmt.Fprintln(w, "Run: **all instances skipped**")
	default:
		fmt.Fprintln(w, "Run: **ok**")
	}

	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Stressor | Instance | Status | Bogo ops | Elapsed |")
	fmt.Fprintln(w, "|----------|----------|--------|----------|---------|")

	for _, r := range results {
		fmt.Fprintf(w, "| %s | %d | %s | %d | %s |\n",
			r.Stressor,
			r.Instance,
			r.Status,
			r.BogoOps,
			formatMs(r.ElapsedMs),
		)
	}

	metricRows := false
	for _, r := range results {
		if len(r.Metrics) > 0 {
			metricRows = true

			break
		}
	}

	if metricRows {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Stressor | Instance | Metric | Value |")
		fmt.Fprintln(w, "|----------|----------|--------|-------|")

		for _, r := range results {
			for _, m := range r.Metrics {
				fmt.Fprintf(w, "| %s | %d | %s | %.2f |\n",
					r.Stressor, r.Instance, m.Label, m.Value)
			}
		}
	}

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  - %s[%d]: %s\n", r.Stressor, r.Instance, r.Error)
		}
	}

	return nil
}

// GenerateJSON writes results as JSON to w.
func GenerateJSON(w io.Writer, results []stressor.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

func formatMs(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}

	return fmt.Sprintf("%.2fs", float64(ms)/1000)
}
