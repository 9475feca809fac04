package profile

import "sort"

// Allocation is the number of concurrent users a profile receives out of
// the run's total.
type Allocation struct {
	Profile *Profile
	Users   int
}

// Allocate splits total users across profiles proportionally to their
// population weights using the largest-remainder method, so the counts
// always sum to total and each profile's share converges on
// weight / totalWeight as total grows.
func (r *Registry) Allocate(total int) []Allocation {
	allocs := make([]Allocation, len(r.profiles))
	if total <= 0 {
		for i, p := range r.profiles {
			allocs[i] = Allocation{Profile: p}
		}
		return allocs
	}

	totalWeight := r.TotalWeight()
	assigned := 0
	remainders := make([]float64, len(r.profiles))
	for i, p := range r.profiles {
		exact := float64(total) * float64(p.Weight) / float64(totalWeight)
		n := int(exact)
		allocs[i] = Allocation{Profile: p, Users: n}
		remainders[i] = exact - float64(n)
		assigned += n
	}

	// Hand out the rounding leftovers by largest remainder, declaration
	// order breaking ties.
	order := make([]int, len(r.profiles))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for i := 0; assigned < total; i++ {
		allocs[order[i%len(order)]].Users++
		assigned++
	}

	return allocs
}

// SpawnOrder flattens an allocation into the sequence users should be
// started in. Each profile's users are spread evenly through the
// sequence so the population mix stays proportional while the spawn
// ramp is still climbing.
func SpawnOrder(allocs []Allocation) []*Profile {
	type slot struct {
		p   *Profile
		key float64
	}
	var slots []slot
	for _, a := range allocs {
		if a.Users <= 0 {
			continue
		}
		for j := 0; j < a.Users; j++ {
			slots = append(slots, slot{p: a.Profile, key: (float64(j) + 0.5) / float64(a.Users)})
		}
	}
	sort.SliceStable(slots, func(a, b int) bool { return slots[a].key < slots[b].key })

	order := make([]*Profile, len(slots))
	for i, s := range slots {
		order[i] = s.p
	}
	return order
}
