package httpuser

import (
	"context"
	"testing"
	"time"

	"poolburn/internal/core"
	"poolburn/internal/profile"
)

func testProfile(wait profile.WaitTime) *profile.Profile {
	return &profile.Profile{
		Name:   "test",
		Weight: 1,
		Wait:   wait,
		Tasks: []profile.Task{
			{Name: "/noop", Weight: 1, Run: func(ctx context.Context) core.Event {
				return core.Event{Name: "/noop", Success: true, StatusCode: 200}
			}},
		},
	}
}

func TestUser_RunReportsOneEvent(t *testing.T) {
	u, err := NewUser(testProfile(profile.Between(0, 0)), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rep := &core.MemoryReporter{}
	if err := u.Run(context.Background(), 7, rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := rep.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.UserID != 7 {
		t.Errorf("expected user ID 7, got %d", e.UserID)
	}
	if e.Name != "/noop" || !e.Success {
		t.Errorf("unexpected event %+v", e)
	}
	if e.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestUser_CancelledDuringWait(t *testing.T) {
	u, err := NewUser(testProfile(profile.Between(time.Minute, time.Minute)), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	rep := &core.MemoryReporter{}

	done := make(chan error, 1)
	go func() { done <- u.Run(ctx, 1, rep) }()

	cancel()
	select {
	case err := <-done:
		if err == nil {
			t.Error("expected context error")
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	if len(rep.Events()) != 0 {
		t.Error("cancelled wait must not report an event")
	}
}

func TestUser_WaitIsSampledFromRange(t *testing.T) {
	u, err := NewUser(testProfile(profile.Between(30*time.Millisecond, 60*time.Millisecond)), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rep := &core.MemoryReporter{}
	start := time.Now()
	if err := u.Run(context.Background(), 1, rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < 30*time.Millisecond {
		t.Errorf("run returned before minimum wait, elapsed %v", elapsed)
	}
}

func TestUser_TaskFailureDoesNotStopLoop(t *testing.T) {
	p := &profile.Profile{
		Name:   "failing",
		Weight: 1,
		Wait:   profile.Between(0, 0),
		Tasks: []profile.Task{
			{Name: "/bad", Weight: 1, Run: func(ctx context.Context) core.Event {
				return core.Event{Name: "/bad", Success: false, Error: "HTTP 500", StatusCode: 500}
			}},
		},
	}
	u, err := NewUser(p, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rep := &core.MemoryReporter{}
	for i := 0; i < 5; i++ {
		if err := u.Run(context.Background(), 1, rep); err != nil {
			t.Fatalf("iteration %d: task failure must not end the loop: %v", i, err)
		}
	}
	if got := len(rep.Events()); got != 5 {
		t.Errorf("expected 5 reported failures, got %d", got)
	}
}
