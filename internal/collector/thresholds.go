package collector

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Thresholds defines run-level pass/fail criteria, distinct from the
// per-request classification: a run can be declared failed because too
// many requests were classified as failures or latency drifted, which
// is exactly what a pool-exhaustion incident looks like in aggregate.
type Thresholds struct {
	RequestDuration *DurationThresholds `yaml:"request_duration"`
	FailureRate     string              `yaml:"failure_rate"` // e.g. "5%"
}

// DurationThresholds defines latency limits; zero values are unchecked.
type DurationThresholds struct {
	Avg time.Duration `yaml:"avg"`
	P50 time.Duration `yaml:"p50"`
	P90 time.Duration `yaml:"p90"`
	P95 time.Duration `yaml:"p95"`
	P99 time.Duration `yaml:"p99"`
}

// ThresholdResult represents the outcome of a single threshold check.
type ThresholdResult struct {
	Name      string `json:"name"`
	Passed    bool   `json:"passed"`
	Threshold string `json:"threshold"`
	Actual    string `json:"actual"`
}

// ThresholdResults contains all threshold check results.
type ThresholdResults struct {
	Passed  bool              `json:"passed"`
	Results []ThresholdResult `json:"results"`
}

// Check evaluates all thresholds against computed metrics.
func (t *Thresholds) Check(m *Metrics) *ThresholdResults {
	if t == nil {
		return &ThresholdResults{Passed: true}
	}

	results := &ThresholdResults{
		Passed:  true,
		Results: make([]ThresholdResult, 0),
	}

	if t.RequestDuration != nil {
		results.checkDurations(t.RequestDuration, &m.Duration)
	}
	if t.FailureRate != "" {
		results.checkFailureRate(t.FailureRate, m)
	}

	return results
}

func (r *ThresholdResults) checkDurations(limits *DurationThresholds, actual *DurationMetrics) {
	checks := []struct {
		name   string
		limit  time.Duration
		actual time.Duration
	}{
		{"request_duration.avg", limits.Avg, actual.Avg},
		{"request_duration.p50", limits.P50, actual.P50},
		{"request_duration.p90", limits.P90, actual.P90},
		{"request_duration.p95", limits.P95, actual.P95},
		{"request_duration.p99", limits.P99, actual.P99},
	}

	for _, check := range checks {
		if check.limit == 0 {
			continue
		}
		passed := check.actual < check.limit
		if !passed {
			r.Passed = false
		}
		r.Results = append(r.Results, ThresholdResult{
			Name:      check.name,
			Passed:    passed,
			Threshold: FormatDuration(check.limit),
			Actual:    FormatDuration(check.actual),
		})
	}
}

func (r *ThresholdResults) checkFailureRate(limit string, m *Metrics) {
	limitRate, err := parsePercentage(limit)
	if err != nil {
		return
	}

	actualRate := 100.0 - m.SuccessRate
	if m.TotalRequests == 0 {
		actualRate = 0
	}
	passed := actualRate < limitRate
	if !passed {
		r.Passed = false
	}

	r.Results = append(r.Results, ThresholdResult{
		Name:      "failure_rate",
		Passed:    passed,
		Threshold: limit,
		Actual:    fmt.Sprintf("%.2f%%", actualRate),
	})
}

// Violations returns only the failed threshold results.
func (r *ThresholdResults) Violations() []ThresholdResult {
	violations := make([]ThresholdResult, 0)
	for _, result := range r.Results {
		if !result.Passed {
			violations = append(violations, result)
		}
	}
	return violations
}

func parsePercentage(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return 0, fmt.Errorf("invalid percentage format: %s", s)
	}
	return strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}
