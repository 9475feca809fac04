// Package coordinator manages virtual-user goroutine lifecycle: starting
// users (optionally ramped at a spawn rate), looping their iterations,
// and shutting down cleanly on cancellation.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"poolburn/internal/core"
	"poolburn/internal/ratelimit"
)

// spawnTickInterval is how often the ramp loop checks whether more
// users should be started.
const spawnTickInterval = 100 * time.Millisecond

type Coordinator struct {
	nextID      atomic.Int64
	wg          sync.WaitGroup
	reporter    core.Reporter
	activeCount atomic.Int32
}

func NewCoordinator(reporter core.Reporter) *Coordinator {
	return &Coordinator{reporter: reporter}
}

// Spawn starts every user immediately. Each runs in its own goroutine,
// looping iterations until the context is done or its iteration limit
// is reached.
func (c *Coordinator) Spawn(ctx context.Context, users []core.Workflow, config core.RunnerConfig) {
	for _, u := range users {
		c.spawnOne(ctx, u, config)
	}
}

// RunRamp starts users from the slice in order, pacing starts so the
// running count tracks the ramp's target. Returns once every user has
// been started or the context is done; started users keep running until
// cancellation.
func (c *Coordinator) RunRamp(ctx context.Context, users []core.Workflow, ramp *ratelimit.SpawnRamp, config core.RunnerConfig) {
	started := 0
	ticker := time.NewTicker(spawnTickInterval)
	defer ticker.Stop()

	for started < len(users) {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			target := ramp.TargetUsers()
			if target > len(users) {
				target = len(users)
			}
			for ; started < target; started++ {
				c.spawnOne(ctx, users[started], config)
			}
		}
	}
}

func (c *Coordinator) spawnOne(ctx context.Context, user core.Workflow, config core.RunnerConfig) {
	userID := int(c.nextID.Add(1))
	c.activeCount.Add(1)
	c.wg.Add(1)

	go func() {
		defer func() {
			c.wg.Done()
			c.activeCount.Add(-1)
		}()
		defer c.recoverPanic(userID)

		runner := core.NewRunner(user, c.reporter, userID, config)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				err := runner.RunIteration(ctx)
				if err != nil {
					if errors.Is(err, core.ErrMaxIterationsReached) {
						return // clean exit
					}
					return // context cancelled mid-iteration
				}
			}
		}
	}()
}

// Wait blocks until every user goroutine has exited.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// ActiveUsers returns the number of currently running users.
func (c *Coordinator) ActiveUsers() int {
	return int(c.activeCount.Load())
}

// recoverPanic converts a panicking user goroutine into a failed event
// instead of taking down the run.
func (c *Coordinator) recoverPanic(userID int) {
	if r := recover(); r != nil {
		c.reporter.Report(core.Event{
			UserID:    userID,
			Timestamp: time.Now(),
			Name:      "panic",
			Success:   false,
			Error:     fmt.Sprintf("panic: %v", r),
		})
	}
}
