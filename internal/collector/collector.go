// Package collector aggregates classified events and computes run metrics.
package collector

import (
	"sync"
	"time"

	"poolburn/internal/core"
)

// Collector is the sink every virtual user reports into. Classified
// query outcomes arrive over a buffered channel so a burst of users
// finishing at once never serializes on a lock in the request path.
type Collector struct {
	events    []core.Event
	incoming  chan core.Event
	drained   chan struct{}
	mu        sync.Mutex
	closed    bool
	startTime time.Time
	endTime   time.Time
}

// NewCollector creates a Collector and starts its drain goroutine.
func NewCollector() *Collector {
	c := &Collector{
		events:    make([]core.Event, 0),
		incoming:  make(chan core.Event, 1000),
		drained:   make(chan struct{}),
		startTime: time.Now(),
	}
	go c.drain()
	return c
}

func (c *Collector) drain() {
	for event := range c.incoming {
		c.mu.Lock()
		c.events = append(c.events, event)
		c.mu.Unlock()
	}
	close(c.drained)
}

// Report records an event. Thread-safe. Events are dropped rather than
// blocking a user goroutine when the buffer is full, and dropped
// silently after Close: a straggling user finishing its last query
// during shutdown must never take down the run.
func (c *Collector) Report(event core.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.incoming <- event:
	default:
	}
}

// Close freezes the run duration, stops accepting events, and waits for
// the backlog to drain. Safe to call more than once.
func (c *Collector) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.endTime = time.Now()
	c.mu.Unlock()

	close(c.incoming)
	<-c.drained
}

// Events returns a copy of collected events.
func (c *Collector) Events() []core.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]core.Event, len(c.events))
	copy(result, c.events)
	return result
}

// Duration returns the elapsed run time, frozen once Close is called.
func (c *Collector) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.endTime.IsZero() {
		return c.endTime.Sub(c.startTime)
	}
	return time.Since(c.startTime)
}

// Compute aggregates the collected events into metrics. Valid both
// mid-run (the progress line computes every second) and after Close.
func (c *Collector) Compute() *Metrics {
	return ComputeMetrics(c.Events(), c.Duration())
}
