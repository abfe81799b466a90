package sheets

import (
	"context"
	"time"
)

// lookupPolicy bounds a fixed-delay retry around an eventually consistent
// read. It is a budget, not a poll loop: once attempts are exhausted the
// caller must treat the miss as authoritative.
type lookupPolicy struct {
	attempts int
	delay    time.Duration
	sleep    func(time.Duration)
}

func defaultLookupPolicy(attempts int, delay time.Duration) lookupPolicy {
	return lookupPolicy{attempts: attempts, delay: delay, sleep: time.Sleep}
}

// run calls fn until it reports done, an error occurs, or the attempt
// budget runs out, sleeping the fixed delay between attempts.
func (p lookupPolicy) run(ctx context.Context, fn func(attempt int) (done bool, err error)) error {
	for attempt := 0; attempt < p.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := fn(attempt)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if attempt < p.attempts-1 {
			p.sleep(p.delay)
		}
	}
	return nil
}
