// Package resilience guards outbound dependency calls, primarily queue
// publishes, with bounded retries and one circuit breaker per operation.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Verdict tells the executor what to do with a failed call: whether to try
// again, and whether the breaker should hold it against the dependency.
// Caller-side mistakes typically neither retry nor count; broker outages do
// both.
type Verdict struct {
	Retry           bool
	CountsAsFailure bool
}

// Classifier inspects an outbound error and renders a Verdict.
type Classifier func(err error) Verdict

type Executor struct {
	policy Policy

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[any]
}

func NewExecutor(policy Policy) *Executor {
	return &Executor{
		policy:   policy.withDefaults(),
		breakers: make(map[string]*gobreaker.CircuitBreaker[any]),
	}
}

// Do runs call under the retry policy and, when enabled, inside the circuit
// breaker registered for operation. The classifier decides per error whether
// another attempt is worthwhile.
func (e *Executor) Do(
	ctx context.Context,
	operation string,
	call func(context.Context) error,
	classify Classifier,
) error {
	if call == nil {
		return fmt.Errorf("resilience: nil outbound call")
	}
	operation = strings.TrimSpace(operation)
	if operation == "" {
		operation = "unnamed"
	}
	if classify == nil {
		classify = neverRetry
	}

	if !e.policy.BreakerEnabled {
		return e.retry(ctx, operation, call, classify)
	}

	_, err := e.breakerFor(operation, classify).Execute(func() (any, error) {
		return nil, e.retry(ctx, operation, call, classify)
	})
	return err
}

func (e *Executor) retry(
	ctx context.Context,
	operation string,
	call func(context.Context) error,
	classify Classifier,
) error {
	delay := e.policy.InitialDelay

	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		err := call(ctx)
		if err == nil {
			return nil
		}
		if !classify(err).Retry || attempt == e.policy.MaxAttempts {
			return err
		}

		slog.Warn("outbound_retry",
			"operation", operation,
			"attempt", attempt,
			"max_attempts", e.policy.MaxAttempts,
			"delay_ms", float64(delay.Microseconds())/1000.0,
			"error", err,
		)
		if !sleepCtx(ctx, delay) {
			return err
		}
		delay = e.policy.nextDelay(delay)
	}
}

// sleepCtx waits for d or until ctx is done; it reports whether the full
// delay elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (e *Executor) breakerFor(operation string, classify Classifier) *gobreaker.CircuitBreaker[any] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if breaker, ok := e.breakers[operation]; ok {
		return breaker
	}

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        operation,
		MaxRequests: e.policy.BreakerProbeCalls,
		Timeout:     e.policy.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < e.policy.BreakerMinCalls {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= e.policy.BreakerFailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !classify(err).CountsAsFailure
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("breaker_state_change",
				"operation", name, "from", from.String(), "to", to.String())
		},
	})
	e.breakers[operation] = breaker
	return breaker
}

// IsCircuitOpen reports whether err came from the breaker refusing the call
// rather than from the dependency itself.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func neverRetry(error) Verdict {
	return Verdict{Retry: false, CountsAsFailure: true}
}
