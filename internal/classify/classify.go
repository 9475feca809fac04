// Package classify turns raw response data into pass/fail verdicts.
//
// The thresholds encode the domain assumption that the slow query path
// is inherently expensive (its ceiling only guards against pathological
// slowdown) while the fast path and health probe must stay near-instant.
package classify

import (
	"fmt"
	"net/http"
)

// Kind identifies which endpoint a response came from.
type Kind string

const (
	KindSlow   Kind = "slow"
	KindFast   Kind = "fast"
	KindHealth Kind = "health"
)

// Latency ceilings, in milliseconds. Fixed for the life of a run.
const (
	SlowQueryLimitMs   = 5000
	FastQueryLimitMs   = 100
	HealthCheckLimitMs = 1000
)

// Response holds the decoded result of a request. Fields missing from
// the response body are zero, which never fails a threshold on its own.
type Response struct {
	StatusCode     int // 0 when no response was received
	QueryTimeMs    float64
	ResponseTimeMs float64
}

// Result is the verdict for a single response.
type Result struct {
	OK      bool
	Message string // diagnostic, set only on failure
}

func failuref(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

// Classify decides success or failure for a response from the given
// endpoint kind. Pure function: no side effects, safe for concurrent use.
//
// Status 0 means the request never produced a response. Under load that
// is the connection pool running dry, which is the primary signal this
// whole tool exists to surface, so it gets its own message for every
// endpoint kind.
func Classify(kind Kind, resp Response) Result {
	if resp.StatusCode == 0 {
		return failuref("connection timeout - pool exhausted")
	}

	switch kind {
	case KindSlow:
		if resp.StatusCode != http.StatusOK {
			return failuref("HTTP %d", resp.StatusCode)
		}
		if resp.QueryTimeMs > SlowQueryLimitMs {
			return failuref("query too slow: %.0fms", resp.QueryTimeMs)
		}
		return Result{OK: true}

	case KindFast:
		if resp.StatusCode != http.StatusOK {
			return failuref("HTTP %d", resp.StatusCode)
		}
		if resp.QueryTimeMs > FastQueryLimitMs {
			return failuref("unexpectedly slow: %.0fms", resp.QueryTimeMs)
		}
		return Result{OK: true}

	case KindHealth:
		if resp.StatusCode != http.StatusOK {
			return failuref("health check failed - service may be down")
		}
		if resp.ResponseTimeMs > HealthCheckLimitMs {
			return failuref("health check slow: %.0fms - system degraded", resp.ResponseTimeMs)
		}
		return Result{OK: true}
	}

	return failuref("unknown endpoint kind %q", kind)
}
