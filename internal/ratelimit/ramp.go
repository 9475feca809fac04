package ratelimit

import (
	"math"
	"time"

	"poolburn/internal/core"
)

// SpawnRamp computes how many virtual users should be running at any
// moment while starting perSec users per second up to total. The
// coordinator polls TargetUsers on a short tick and spawns the
// difference.
type SpawnRamp struct {
	total     int
	perSec    float64
	startTime time.Time
	clock     core.Clock
}

// NewSpawnRamp creates a ramp with a real clock. A perSec of 0 or less
// means all users start immediately.
func NewSpawnRamp(total int, perSec float64) *SpawnRamp {
	return NewSpawnRampWithClock(total, perSec, core.RealClock{})
}

// NewSpawnRampWithClock creates a ramp with a custom clock (for testing).
func NewSpawnRampWithClock(total int, perSec float64, clock core.Clock) *SpawnRamp {
	return &SpawnRamp{
		total:     total,
		perSec:    perSec,
		startTime: clock.Now(),
		clock:     clock,
	}
}

// Elapsed returns time since the ramp started.
func (r *SpawnRamp) Elapsed() time.Duration {
	return r.clock.Since(r.startTime)
}

// TargetUsers returns how many users should have been started by now,
// never exceeding the total.
func (r *SpawnRamp) TargetUsers() int {
	if r.perSec <= 0 {
		return r.total
	}
	target := int(math.Floor(r.perSec * r.Elapsed().Seconds()))
	if target > r.total {
		return r.total
	}
	return target
}

// IsComplete reports whether every user has been scheduled to start.
func (r *SpawnRamp) IsComplete() bool {
	return r.TargetUsers() >= r.total
}

// Total returns the final user count.
func (r *SpawnRamp) Total() int {
	return r.total
}
