package profile

import (
	"fmt"
	"math/rand"
	"time"
)

// WaitTime is the inter-task pause range for a profile. Samples are
// uniform over [Min, Max] inclusive.
type WaitTime struct {
	Min time.Duration
	Max time.Duration
}

// Between is shorthand for a WaitTime literal.
func Between(min, max time.Duration) WaitTime {
	return WaitTime{Min: min, Max: max}
}

func (w WaitTime) Validate() error {
	if w.Min < 0 {
		return fmt.Errorf("wait time min must be non-negative, got %v", w.Min)
	}
	if w.Min > w.Max {
		return fmt.Errorf("wait time min %v must be <= max %v", w.Min, w.Max)
	}
	return nil
}

// Sample draws a delay from the range. For Min == Max it always returns
// exactly that value. Sampling has no side effects; the caller is
// responsible for actually suspending.
func (w WaitTime) Sample(rng *rand.Rand) time.Duration {
	if w.Max <= w.Min {
		return w.Min
	}
	return w.Min + time.Duration(rng.Int63n(int64(w.Max-w.Min)+1))
}
