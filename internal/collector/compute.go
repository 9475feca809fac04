package collector

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"poolburn/internal/core"
)

// ComputeMetrics computes metrics from events. Pure function, no side
// effects.
func ComputeMetrics(events []core.Event, testDuration time.Duration) *Metrics {
	m := &Metrics{
		Buckets:      make(map[string]*BucketMetrics),
		TestDuration: testDuration,
	}

	if len(events) == 0 {
		return m
	}

	all := newHistogram()
	bucketHists := make(map[string]*hdrhistogram.Histogram)

	for _, e := range events {
		m.TotalRequests++
		if e.Success {
			m.SuccessCount++
		} else {
			m.FailureCount++
		}
		record(all, e.Duration)

		bucket, exists := m.Buckets[e.Name]
		if !exists {
			bucket = &BucketMetrics{}
			m.Buckets[e.Name] = bucket
			bucketHists[e.Name] = newHistogram()
		}
		bucket.Count++
		if e.Success {
			bucket.Success++
		} else {
			bucket.Failed++
			if e.Error != "" {
				if bucket.Errors == nil {
					bucket.Errors = make(map[string]int)
				}
				bucket.Errors[e.Error]++
			}
		}
		record(bucketHists[e.Name], e.Duration)
	}

	m.SuccessRate = float64(m.SuccessCount) / float64(m.TotalRequests) * 100
	if m.TestDuration > 0 {
		m.RequestsPerSec = float64(m.TotalRequests) / m.TestDuration.Seconds()
	}

	m.Duration = durationMetrics(all)
	for name, h := range bucketHists {
		m.Buckets[name].Duration = durationMetrics(h)
	}

	return m
}
