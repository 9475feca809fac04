// Package profile defines virtual-user populations: each profile carries
// a population weight, a wait-time range and a weighted task table. The
// engine spawns users proportionally to population weight and each user
// picks its next task by task weight.
package profile

import (
	"context"
	"errors"
	"fmt"

	"poolburn/internal/core"
)

// ErrInvalidProfile is wrapped by all registry validation errors.
var ErrInvalidProfile = errors.New("invalid profile")

// TaskFunc executes one request and returns the classified outcome.
// Implementations must never return an uncaught failure path: transport
// errors and bad responses all end up inside the Event.
type TaskFunc func(ctx context.Context) core.Event

// Task is one weighted entry in a profile's task table.
type Task struct {
	Name   string // display name used for report buckets
	Weight int    // positive; probability = Weight / sum of profile weights
	Run    TaskFunc
}

// Profile describes one virtual-user behavior. Profiles are read-only
// after registry construction and safe to share across user goroutines.
type Profile struct {
	Name   string
	Weight int // population weight, positive
	Wait   WaitTime
	Tasks  []Task
}

// Validate checks the invariants spelled out in the data model: positive
// weights everywhere, a sane wait range, and at least one task. A weight
// of zero would mean "never selected", which callers must express by
// leaving the profile out instead.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: profile name must not be empty", ErrInvalidProfile)
	}
	if p.Weight <= 0 {
		return fmt.Errorf("%w: profile %q: population weight must be positive, got %d", ErrInvalidProfile, p.Name, p.Weight)
	}
	if err := p.Wait.Validate(); err != nil {
		return fmt.Errorf("%w: profile %q: %v", ErrInvalidProfile, p.Name, err)
	}
	if len(p.Tasks) == 0 {
		return fmt.Errorf("%w: profile %q: task set must not be empty", ErrInvalidProfile, p.Name)
	}
	for _, t := range p.Tasks {
		if t.Name == "" {
			return fmt.Errorf("%w: profile %q: task name must not be empty", ErrInvalidProfile, p.Name)
		}
		if t.Weight <= 0 {
			return fmt.Errorf("%w: profile %q: task %q: weight must be positive, got %d", ErrInvalidProfile, p.Name, t.Name, t.Weight)
		}
		if t.Run == nil {
			return fmt.Errorf("%w: profile %q: task %q: missing body", ErrInvalidProfile, p.Name, t.Name)
		}
	}
	return nil
}

// NewTaskChooser builds a weighted chooser over the profile's task table.
// Each user goroutine should hold its own chooser and rng.
func (p *Profile) NewTaskChooser() (*Chooser, error) {
	weights := make([]int, len(p.Tasks))
	for i, t := range p.Tasks {
		weights[i] = t.Weight
	}
	return NewChooser(weights)
}

// Registry is the validated, immutable set of profiles available to a run.
type Registry struct {
	profiles []*Profile
}

// NewRegistry validates every profile and rejects duplicate names.
func NewRegistry(profiles ...*Profile) (*Registry, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: registry must contain at least one profile", ErrInvalidProfile)
	}
	seen := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: duplicate profile name %q", ErrInvalidProfile, p.Name)
		}
		seen[p.Name] = true
	}
	return &Registry{profiles: profiles}, nil
}

// Profiles returns the profiles in declaration order.
func (r *Registry) Profiles() []*Profile {
	return r.profiles
}

// Lookup returns the profile with the given name.
func (r *Registry) Lookup(name string) (*Profile, bool) {
	for _, p := range r.profiles {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Names returns the profile names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.profiles))
	for i, p := range r.profiles {
		names[i] = p.Name
	}
	return names
}

// Select returns a registry restricted to the named profiles, preserving
// declaration order. Used to run single scenarios (e.g. only slow-only).
func (r *Registry) Select(names ...string) (*Registry, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := r.Lookup(n); !ok {
			return nil, fmt.Errorf("unknown profile %q (have %v)", n, r.Names())
		}
		want[n] = true
	}
	var subset []*Profile
	for _, p := range r.profiles {
		if want[p.Name] {
			subset = append(subset, p)
		}
	}
	return NewRegistry(subset...)
}

// TotalWeight returns the sum of population weights.
func (r *Registry) TotalWeight() int {
	total := 0
	for _, p := range r.profiles {
		total += p.Weight
	}
	return total
}
