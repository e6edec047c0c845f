package resilience

import "time"

// Policy bounds how hard the service leans on a struggling dependency: how
// many attempts one call gets, how the delay between them grows, and when
// the per-operation breaker stops letting calls through at all.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	DelayFactor  float64

	BreakerEnabled      bool
	BreakerMinCalls     uint32
	BreakerFailureRatio float64
	BreakerCooldown     time.Duration
	BreakerProbeCalls   uint32
}

// DefaultPolicy is tuned for the queue publish path: a few quick attempts,
// then the breaker sheds load for a while once half the calls fail.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     400 * time.Millisecond,
		DelayFactor:  2.0,

		BreakerEnabled:      true,
		BreakerMinCalls:     10,
		BreakerFailureRatio: 0.5,
		BreakerCooldown:     30 * time.Second,
		BreakerProbeCalls:   2,
	}
}

// withDefaults replaces zero or nonsensical fields so a partially filled
// Policy still behaves.
func (p Policy) withDefaults() Policy {
	def := DefaultPolicy()

	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = def.InitialDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = def.MaxDelay
	}
	if p.MaxDelay < p.InitialDelay {
		p.MaxDelay = p.InitialDelay
	}
	if p.DelayFactor < 1.0 {
		p.DelayFactor = def.DelayFactor
	}

	if p.BreakerMinCalls == 0 {
		p.BreakerMinCalls = def.BreakerMinCalls
	}
	if p.BreakerFailureRatio <= 0 || p.BreakerFailureRatio > 1 {
		p.BreakerFailureRatio = def.BreakerFailureRatio
	}
	if p.BreakerCooldown <= 0 {
		p.BreakerCooldown = def.BreakerCooldown
	}
	if p.BreakerProbeCalls == 0 {
		p.BreakerProbeCalls = def.BreakerProbeCalls
	}

	return p
}

// nextDelay grows the backoff geometrically, capped at MaxDelay.
func (p Policy) nextDelay(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * p.DelayFactor)
	if next > p.MaxDelay {
		return p.MaxDelay
	}
	return next
}
