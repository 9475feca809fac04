package httpuser

import (
	"context"
	"time"

	"poolburn/internal/classify"
	"poolburn/internal/core"
	"poolburn/internal/profile"
)

// Query endpoint paths on the target service.
const (
	SlowPath   = "/api/distribution-groups/slow"
	FastPath   = "/api/distribution-groups/fast"
	HealthPath = "/api/distribution-groups/health"
)

// QueryTask builds a task body that GETs path, classifies the response
// for the given endpoint kind, and reports under the display name.
// Display names may differ from the path so equivalent requests issued
// by different profiles land in separate report buckets.
func QueryTask(c *Client, kind classify.Kind, path, display string) profile.TaskFunc {
	return func(ctx context.Context) core.Event {
		resp, duration := c.GetTimings(ctx, display, path)
		verdict := classify.Classify(kind, resp)
		return core.Event{
			Name:       display,
			Duration:   duration,
			Success:    verdict.OK,
			Error:      verdict.Message,
			StatusCode: resp.StatusCode,
		}
	}
}

// DefaultRegistry declares the built-in virtual-user populations.
//
// The mixed profile carries three times the population weight of each
// single-purpose profile: most real users run the realistic mix, with a
// 20/80 slow/fast task split that is enough to starve the pool. The
// aggressive profiles pause only briefly between requests; the health
// profile paces like an external monitor.
func DefaultRegistry(c *Client) (*profile.Registry, error) {
	slowOnly := &profile.Profile{
		Name:   "slow-only",
		Weight: 1,
		Wait:   profile.Between(100*time.Millisecond, 500*time.Millisecond),
		Tasks: []profile.Task{
			{Name: "/slow", Weight: 1, Run: QueryTask(c, classify.KindSlow, SlowPath, "/slow")},
		},
	}

	fastOnly := &profile.Profile{
		Name:   "fast-only",
		Weight: 1,
		Wait:   profile.Between(100*time.Millisecond, 500*time.Millisecond),
		Tasks: []profile.Task{
			{Name: "/fast", Weight: 1, Run: QueryTask(c, classify.KindFast, FastPath, "/fast")},
		},
	}

	mixed := &profile.Profile{
		Name:   "mixed",
		Weight: 3,
		Wait:   profile.Between(500*time.Millisecond, 2*time.Second),
		Tasks: []profile.Task{
			{Name: "/slow (mixed)", Weight: 2, Run: QueryTask(c, classify.KindSlow, SlowPath, "/slow (mixed)")},
			{Name: "/fast (mixed)", Weight: 8, Run: QueryTask(c, classify.KindFast, FastPath, "/fast (mixed)")},
		},
	}

	healthCheck := &profile.Profile{
		Name:   "health-check",
		Weight: 1,
		Wait:   profile.Between(1*time.Second, 3*time.Second),
		Tasks: []profile.Task{
			{Name: "/health", Weight: 1, Run: QueryTask(c, classify.KindHealth, HealthPath, "/health")},
		},
	}

	return profile.NewRegistry(slowOnly, fastOnly, mixed, healthCheck)
}
