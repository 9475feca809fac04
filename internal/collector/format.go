package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// FormatText writes metrics in human-readable form.
func FormatText(w io.Writer, m *Metrics, thresholds *ThresholdResults) {
	if m.TotalRequests == 0 {
		fmt.Fprintln(w, "No events collected")
		return
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "poolburn - Load Test Results")
	fmt.Fprintln(w, "==============================")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Duration:       %v\n", m.TestDuration.Round(time.Millisecond))
	fmt.Fprintf(w, "Total Requests: %d\n", m.TotalRequests)
	fmt.Fprintf(w, "Success Rate:   %.1f%% (%d / %d)\n", m.SuccessRate, m.SuccessCount, m.TotalRequests)
	fmt.Fprintf(w, "Requests/sec:   %.1f\n", m.RequestsPerSec)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Response Times:")
	fmt.Fprintf(w, "  Min:    %s\n", FormatDuration(m.Duration.Min))
	fmt.Fprintf(w, "  Avg:    %s\n", FormatDuration(m.Duration.Avg))
	fmt.Fprintf(w, "  P50:    %s\n", FormatDuration(m.Duration.P50))
	fmt.Fprintf(w, "  P90:    %s\n", FormatDuration(m.Duration.P90))
	fmt.Fprintf(w, "  P95:    %s\n", FormatDuration(m.Duration.P95))
	fmt.Fprintf(w, "  P99:    %s\n", FormatDuration(m.Duration.P99))
	fmt.Fprintf(w, "  Max:    %s\n", FormatDuration(m.Duration.Max))
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "By Endpoint:")

	names := make([]string, 0, len(m.Buckets))
	for name := range m.Buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b := m.Buckets[name]
		fmt.Fprintf(w, "  %-16s %d reqs  fail=%d  avg=%s  p95=%s  p99=%s\n",
			name, b.Count, b.Failed,
			FormatDuration(b.Duration.Avg),
			FormatDuration(b.Duration.P95),
			FormatDuration(b.Duration.P99))
		for _, msg := range sortedErrors(b.Errors) {
			fmt.Fprintf(w, "    %5dx %s\n", b.Errors[msg], msg)
		}
	}

	if thresholds != nil && len(thresholds.Results) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "Thresholds:")
		for _, result := range thresholds.Results {
			symbol := "✓"
			if !result.Passed {
				symbol = "✗"
			}
			fmt.Fprintf(w, "  %s %s < %s (actual: %s)\n",
				symbol, result.Name, result.Threshold, result.Actual)
		}
	}
}

// sortedErrors returns error messages ordered by descending count,
// message text breaking ties.
func sortedErrors(errs map[string]int) []string {
	msgs := make([]string, 0, len(errs))
	for msg := range errs {
		msgs = append(msgs, msg)
	}
	sort.Slice(msgs, func(i, j int) bool {
		if errs[msgs[i]] != errs[msgs[j]] {
			return errs[msgs[i]] > errs[msgs[j]]
		}
		return msgs[i] < msgs[j]
	})
	return msgs
}

// FormatJSON writes metrics in JSON form.
func FormatJSON(w io.Writer, m *Metrics, thresholds *ThresholdResults) {
	output := struct {
		Duration       string                     `json:"duration"`
		TotalRequests  int                        `json:"totalRequests"`
		SuccessCount   int                        `json:"successCount"`
		FailureCount   int                        `json:"failureCount"`
		SuccessRate    float64                    `json:"successRate"`
		RequestsPerSec float64                    `json:"requestsPerSec"`
		Durations      jsonDurationMetrics        `json:"durations"`
		Buckets        map[string]jsonBucket      `json:"buckets"`
		Thresholds     *ThresholdResults          `json:"thresholds,omitempty"`
	}{
		Duration:       m.TestDuration.Round(time.Millisecond).String(),
		TotalRequests:  m.TotalRequests,
		SuccessCount:   m.SuccessCount,
		FailureCount:   m.FailureCount,
		SuccessRate:    m.SuccessRate,
		RequestsPerSec: m.RequestsPerSec,
		Durations:      toJSONDurations(m.Duration),
		Buckets:        make(map[string]jsonBucket, len(m.Buckets)),
		Thresholds:     thresholds,
	}

	for name, b := range m.Buckets {
		output.Buckets[name] = jsonBucket{
			Count:     b.Count,
			Success:   b.Success,
			Failed:    b.Failed,
			Durations: toJSONDurations(b.Duration),
			Errors:    b.Errors,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(output)
}

type jsonDurationMetrics struct {
	Min string `json:"min"`
	Max string `json:"max"`
	Avg string `json:"avg"`
	P50 string `json:"p50"`
	P90 string `json:"p90"`
	P95 string `json:"p95"`
	P99 string `json:"p99"`
}

type jsonBucket struct {
	Count     int                 `json:"count"`
	Success   int                 `json:"success"`
	Failed    int                 `json:"failed"`
	Durations jsonDurationMetrics `json:"durations"`
	Errors    map[string]int      `json:"errors,omitempty"`
}

func toJSONDurations(d DurationMetrics) jsonDurationMetrics {
	return jsonDurationMetrics{
		Min: FormatDuration(d.Min),
		Max: FormatDuration(d.Max),
		Avg: FormatDuration(d.Avg),
		P50: FormatDuration(d.P50),
		P90: FormatDuration(d.P90),
		P95: FormatDuration(d.P95),
		P99: FormatDuration(d.P99),
	}
}
