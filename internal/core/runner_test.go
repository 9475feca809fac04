package core

import (
	"context"
	"errors"
	"testing"
)

// stubWorkflow is a minimal workflow for testing.
type stubWorkflow struct {
	runFunc func(ctx context.Context, userID int, rep Reporter) error
}

func (s *stubWorkflow) Run(ctx context.Context, userID int, rep Reporter) error {
	if s.runFunc != nil {
		return s.runFunc(ctx, userID, rep)
	}
	return nil
}

func runToLimit(t *testing.T, r *Runner) {
	t.Helper()
	ctx := context.Background()
	for {
		err := r.RunIteration(ctx)
		if errors.Is(err, ErrMaxIterationsReached) {
			return
		}
		if err != nil {
			t.Fatal(err)
		}
	}
}

func TestRunner_MaxIterations(t *testing.T) {
	var callCount int
	workflow := &stubWorkflow{
		runFunc: func(ctx context.Context, userID int, rep Reporter) error {
			callCount++
			rep.Report(Event{Name: "/fast", Success: true})
			return nil
		},
	}

	reporter := &MemoryReporter{}
	runner := NewRunner(workflow, reporter, 1, RunnerConfig{MaxIterations: 3})
	runToLimit(t, runner)

	if runner.Iteration() != 3 {
		t.Errorf("expected 3 iterations, got %d", runner.Iteration())
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
	if len(reporter.Events()) != 3 {
		t.Errorf("expected 3 events, got %d", len(reporter.Events()))
	}
}

func TestRunner_WarmupExcludesMetrics(t *testing.T) {
	reporter := &MemoryReporter{}
	workflow := &stubWorkflow{
		runFunc: func(ctx context.Context, userID int, rep Reporter) error {
			rep.Report(Event{Name: "/fast", Success: true})
			return nil
		},
	}

	runner := NewRunner(workflow, reporter, 1, RunnerConfig{
		MaxIterations: 5,
		WarmupIters:   2,
	})
	runToLimit(t, runner)

	// 5 total iterations, but only 3 reported (after warmup).
	if runner.Iteration() != 5 {
		t.Errorf("expected 5 iterations, got %d", runner.Iteration())
	}
	if len(reporter.Events()) != 3 {
		t.Errorf("expected 3 events (excluding warmup), got %d", len(reporter.Events()))
	}
}

func TestRunner_IsWarmup(t *testing.T) {
	runner := NewRunner(&stubWorkflow{}, &MemoryReporter{}, 1, RunnerConfig{
		MaxIterations: 5,
		WarmupIters:   2,
	})

	ctx := context.Background()

	if !runner.IsWarmup() {
		t.Error("expected IsWarmup() before any iterations")
	}

	runner.RunIteration(ctx)
	if !runner.IsWarmup() {
		t.Error("expected IsWarmup() after 1 of 2 warmup iterations")
	}

	runner.RunIteration(ctx)
	if runner.IsWarmup() {
		t.Error("expected warmup over after 2 iterations")
	}
}

func TestRunner_WorkflowErrorReturned(t *testing.T) {
	wantErr := errors.New("connection reset")
	workflow := &stubWorkflow{
		runFunc: func(ctx context.Context, userID int, rep Reporter) error {
			return wantErr
		},
	}

	runner := NewRunner(workflow, &MemoryReporter{}, 1, RunnerConfig{})
	if err := runner.RunIteration(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("expected workflow error, got %v", err)
	}
	// A failed iteration still counts toward the limit.
	if runner.Iteration() != 1 {
		t.Errorf("expected 1 iteration, got %d", runner.Iteration())
	}
}

func TestRunner_UnlimitedByDefault(t *testing.T) {
	runner := NewRunner(&stubWorkflow{}, NullReporter, 1, RunnerConfig{})
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		if err := runner.RunIteration(ctx); err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
	}
	if runner.Iteration() != 100 {
		t.Errorf("expected 100 iterations, got %d", runner.Iteration())
	}
}
