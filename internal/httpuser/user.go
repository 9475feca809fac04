package httpuser

import (
	"context"
	"math/rand"
	"time"

	"poolburn/internal/core"
	"poolburn/internal/profile"
	"poolburn/internal/ratelimit"
)

// User is one virtual user executing a profile's task mix. Each User
// owns its rng and chooser and must not be shared between goroutines;
// the profile it points at is immutable and shared freely.
type User struct {
	profile *profile.Profile
	tasks   *profile.Chooser
	rng     *rand.Rand
	limiter *ratelimit.Limiter // optional global rps cap
}

// NewUser creates a virtual user for a validated profile. The limiter
// may be nil.
func NewUser(p *profile.Profile, limiter *ratelimit.Limiter) (*User, error) {
	tasks, err := p.NewTaskChooser()
	if err != nil {
		return nil, err
	}
	return &User{
		profile: p,
		tasks:   tasks,
		rng:     rand.New(rand.NewSource(rand.Int63())),
		limiter: limiter,
	}, nil
}

// Run executes one wait/select/execute/report cycle. The only errors it
// returns come from context cancellation; every task outcome, including
// transport failures, is converted into a reported event. Cancellation
// is honored at the wait boundary, so an in-flight task always finishes
// its classify/report cycle before the user stops.
func (u *User) Run(ctx context.Context, userID int, rep core.Reporter) error {
	if err := sleepCtx(ctx, u.profile.Wait.Sample(u.rng)); err != nil {
		return err
	}
	if u.limiter != nil {
		if err := u.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	task := u.profile.Tasks[u.tasks.Pick(u.rng)]
	event := task.Run(core.ContextWithUserID(ctx, userID))
	event.UserID = userID
	event.Timestamp = time.Now()
	if event.Name == "" {
		event.Name = task.Name
	}
	rep.Report(event)
	return nil
}

// Profile returns the profile this user executes.
func (u *User) Profile() *profile.Profile {
	return u.profile
}

// sleepCtx suspends for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
