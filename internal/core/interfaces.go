// Package core defines the fundamental interfaces and types for poolburn.
package core

import (
	"context"
	"time"
)

// Event represents a single classified request issued by a virtual user.
type Event struct {
	UserID     int
	Timestamp  time.Time
	Name       string // report bucket, e.g. "/slow (mixed)"
	Duration   time.Duration
	Success    bool
	Error      string // classification message when Success is false
	StatusCode int    // 0 means no response was received
}

// Workflow is one virtual user's behavior. Run executes a single
// wait/select/execute/report cycle; the engine calls it in a loop
// until the run ends.
type Workflow interface {
	Run(ctx context.Context, userID int, rep Reporter) error
}

// Reporter is the interface virtual users use to hand classified
// results to the collector. Implementations must be safe for
// concurrent use from many user goroutines.
type Reporter interface {
	Report(Event)
}
