package core

import (
	"context"
	"errors"
)

// ErrMaxIterationsReached indicates the runner hit its iteration limit.
var ErrMaxIterationsReached = errors.New("max iterations reached")

// NullReporter discards all events (used during warmup).
var NullReporter Reporter = nullReporter{}

type nullReporter struct{}

func (nullReporter) Report(Event) {}

// RunnerConfig controls execution behavior.
type RunnerConfig struct {
	MaxIterations int // 0 = unlimited
	WarmupIters   int // iterations before metrics count (per-user)
}

// Runner controls iteration-level execution of a virtual user.
// A Runner is NOT safe for concurrent use; each user goroutine must
// have its own Runner.
type Runner struct {
	workflow  Workflow
	reporter  Reporter
	userID    int
	config    RunnerConfig
	iteration int
}

// NewRunner creates a Runner for a single virtual user.
func NewRunner(workflow Workflow, reporter Reporter, userID int, config RunnerConfig) *Runner {
	return &Runner{
		workflow: workflow,
		reporter: reporter,
		userID:   userID,
		config:   config,
	}
}

// RunIteration executes one complete wait/select/execute/report cycle.
// Returns nil on success, ErrMaxIterationsReached when the limit is hit,
// or the workflow error. In practice workflows only return context
// cancellation; task failures are reported as events, never returned.
func (r *Runner) RunIteration(ctx context.Context) error {
	if r.config.MaxIterations > 0 && r.iteration >= r.config.MaxIterations {
		return ErrMaxIterationsReached
	}

	rep := r.reporter
	if r.iteration < r.config.WarmupIters {
		rep = NullReporter
	}

	err := r.workflow.Run(ctx, r.userID, rep)
	r.iteration++
	return err
}

// Iteration returns the number of completed iterations.
func (r *Runner) Iteration() int {
	return r.iteration
}

// IsWarmup returns true if still in the warmup phase.
func (r *Runner) IsWarmup() bool {
	return r.iteration < r.config.WarmupIters
}
