package profile

import (
	"math"
	"testing"
)

func fourProfileRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(
		validProfile("slow-only", 1),
		validProfile("fast-only", 1),
		validProfile("mixed", 3),
		validProfile("health-check", 1),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func TestAllocate_SumsToTotal(t *testing.T) {
	r := fourProfileRegistry(t)

	for _, total := range []int{1, 2, 5, 6, 7, 13, 100, 997} {
		allocs := r.Allocate(total)
		sum := 0
		for _, a := range allocs {
			sum += a.Users
		}
		if sum != total {
			t.Errorf("total %d: allocations sum to %d", total, sum)
		}
	}
}

func TestAllocate_ExactProportions(t *testing.T) {
	r := fourProfileRegistry(t)

	// 6 users with weights {1,1,3,1} divides exactly.
	allocs := r.Allocate(6)
	want := map[string]int{"slow-only": 1, "fast-only": 1, "mixed": 3, "health-check": 1}
	for _, a := range allocs {
		if a.Users != want[a.Profile.Name] {
			t.Errorf("%s: got %d users, want %d", a.Profile.Name, a.Users, want[a.Profile.Name])
		}
	}
}

func TestAllocate_MixedConvergesToHalf(t *testing.T) {
	// With population weights {1,1,3,1} the weight-3 profile must take
	// 3/6 = 0.5 of all users as totals grow.
	r := fourProfileRegistry(t)

	for _, total := range []int{100, 1000, 10000} {
		allocs := r.Allocate(total)
		var mixed int
		for _, a := range allocs {
			if a.Profile.Name == "mixed" {
				mixed = a.Users
			}
		}
		frac := float64(mixed) / float64(total)
		if math.Abs(frac-0.5) > 0.01 {
			t.Errorf("total %d: mixed fraction = %.4f, want 0.5", total, frac)
		}
	}
}

func TestAllocate_ZeroTotal(t *testing.T) {
	r := fourProfileRegistry(t)
	for _, a := range r.Allocate(0) {
		if a.Users != 0 {
			t.Errorf("%s: expected 0 users, got %d", a.Profile.Name, a.Users)
		}
	}
}

func TestSpawnOrder_LengthAndCounts(t *testing.T) {
	r := fourProfileRegistry(t)
	allocs := r.Allocate(60)
	order := SpawnOrder(allocs)

	if len(order) != 60 {
		t.Fatalf("expected 60 spawn slots, got %d", len(order))
	}

	counts := make(map[string]int)
	for _, p := range order {
		counts[p.Name]++
	}
	for _, a := range allocs {
		if counts[a.Profile.Name] != a.Users {
			t.Errorf("%s: spawn order has %d, allocation says %d",
				a.Profile.Name, counts[a.Profile.Name], a.Users)
		}
	}
}

func TestSpawnOrder_KeepsMixProportionalDuringRamp(t *testing.T) {
	r := fourProfileRegistry(t)
	order := SpawnOrder(r.Allocate(600))

	// Any early prefix of the spawn sequence should already be close to
	// the target mix, so a partially-ramped run looks like the full one.
	prefix := order[:120]
	counts := make(map[string]int)
	for _, p := range prefix {
		counts[p.Name]++
	}
	frac := float64(counts["mixed"]) / float64(len(prefix))
	if math.Abs(frac-0.5) > 0.05 {
		t.Errorf("mixed fraction in first 120 spawns = %.3f, want ~0.5", frac)
	}
}
