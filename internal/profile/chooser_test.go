package profile

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewChooser_RejectsBadWeights(t *testing.T) {
	if _, err := NewChooser(nil); err == nil {
		t.Error("expected error for empty weights")
	}
	if _, err := NewChooser([]int{1, 0}); err == nil {
		t.Error("expected error for zero weight")
	}
	if _, err := NewChooser([]int{-1}); err == nil {
		t.Error("expected error for negative weight")
	}
}

func TestChooser_SingleWeight(t *testing.T) {
	c, err := NewChooser([]int{7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		if idx := c.Pick(rng); idx != 0 {
			t.Fatalf("single entry must always win, got index %d", idx)
		}
	}
}

func TestChooser_Deterministic(t *testing.T) {
	c, err := NewChooser([]int{2, 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := rand.New(rand.NewSource(99))
	b := rand.New(rand.NewSource(99))
	for i := 0; i < 1000; i++ {
		if c.Pick(a) != c.Pick(b) {
			t.Fatal("same seed must produce the same pick sequence")
		}
	}
}

func TestChooser_RealisticMixRatio(t *testing.T) {
	// The mixed profile's task table is slow:2, fast:8; over many draws
	// the observed slow:fast ratio must converge to 1:4.
	c, err := NewChooser([]int{2, 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	const n = 100000
	counts := [2]int{}
	for i := 0; i < n; i++ {
		counts[c.Pick(rng)]++
	}

	slowFrac := float64(counts[0]) / n
	if math.Abs(slowFrac-0.2) > 0.01 {
		t.Errorf("slow fraction = %.4f, want 0.2 +- 0.01", slowFrac)
	}
}

func TestChooser_UniformWeights(t *testing.T) {
	c, err := NewChooser([]int{1, 1, 1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rng := rand.New(rand.NewSource(3))
	const n = 40000
	counts := make([]int, 4)
	for i := 0; i < n; i++ {
		counts[c.Pick(rng)]++
	}
	for i, count := range counts {
		frac := float64(count) / n
		if math.Abs(frac-0.25) > 0.02 {
			t.Errorf("index %d fraction = %.4f, want 0.25 +- 0.02", i, frac)
		}
	}
}

func TestChooser_Total(t *testing.T) {
	c, err := NewChooser([]int{2, 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Total() != 10 {
		t.Errorf("expected total 10, got %d", c.Total())
	}
}
