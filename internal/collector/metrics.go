package collector

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Metrics contains aggregated run results.
type Metrics struct {
	TotalRequests  int                       `json:"totalRequests"`
	SuccessCount   int                       `json:"successCount"`
	FailureCount   int                       `json:"failureCount"`
	SuccessRate    float64                   `json:"successRate"`
	RequestsPerSec float64                   `json:"requestsPerSec"`
	TestDuration   time.Duration             `json:"testDuration"`
	Duration       DurationMetrics           `json:"durations"`
	Buckets        map[string]*BucketMetrics `json:"buckets"`
}

// DurationMetrics contains latency statistics.
type DurationMetrics struct {
	Min time.Duration `json:"min"`
	Max time.Duration `json:"max"`
	Avg time.Duration `json:"avg"`
	P50 time.Duration `json:"p50"`
	P90 time.Duration `json:"p90"`
	P95 time.Duration `json:"p95"`
	P99 time.Duration `json:"p99"`
}

// BucketMetrics contains per-report-bucket statistics. Errors tallies
// classification messages so the dominant failure mode (e.g. pool
// exhaustion vs threshold breach) is visible per bucket.
type BucketMetrics struct {
	Count    int             `json:"count"`
	Success  int             `json:"success"`
	Failed   int             `json:"failed"`
	Duration DurationMetrics `json:"durations"`
	Errors   map[string]int  `json:"errors,omitempty"`
}

// histogram bounds: 1us to 10min at 3 significant figures.
func newHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(1, int64(10*time.Minute/time.Microsecond), 3)
}

func record(h *hdrhistogram.Histogram, d time.Duration) {
	v := int64(d / time.Microsecond)
	if v < 1 {
		v = 1
	}
	// Out-of-range values are clamped by the bounds above; recording
	// errors mean the value exceeded 10min and are safe to drop.
	_ = h.RecordValue(v)
}

func durationMetrics(h *hdrhistogram.Histogram) DurationMetrics {
	if h.TotalCount() == 0 {
		return DurationMetrics{}
	}
	us := func(v int64) time.Duration { return time.Duration(v) * time.Microsecond }
	return DurationMetrics{
		Min: us(h.Min()),
		Max: us(h.Max()),
		Avg: time.Duration(h.Mean() * float64(time.Microsecond)),
		P50: us(h.ValueAtQuantile(50)),
		P90: us(h.ValueAtQuantile(90)),
		P95: us(h.ValueAtQuantile(95)),
		P99: us(h.ValueAtQuantile(99)),
	}
}
