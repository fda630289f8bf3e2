package resilience

import "context"

// Guard composes an optional rate limiter and an optional circuit breaker.
// A nil Guard, or one built from two nil configs, runs exchanges directly.
type Guard struct {
	breaker *CircuitBreaker
	limiter *RateLimiter
}

// NewGuard builds a guard. Either config may be nil to disable that pattern.
func NewGuard(cb *CircuitBreakerConfig, rl *RateLimiterConfig) *Guard {
	g := &Guard{}
	if cb != nil {
		g.breaker = NewCircuitBreaker(*cb)
	}
	if rl != nil {
		g.limiter = NewRateLimiter(*rl)
	}
	return g
}

// Do waits for the limiter, then runs fn through the breaker.
func (g *Guard) Do(ctx context.Context, fn func() error) error {
	if g == nil {
		return fn()
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if g.breaker != nil {
		return g.breaker.Execute(fn)
	}
	return fn()
}

// Available reports whether an exchange would currently be admitted by the breaker.
func (g *Guard) Available() bool {
	if g == nil || g.breaker == nil {
		return true
	}
	return g.breaker.State() != StateOpen
}

// Breaker returns the circuit breaker, or nil when disabled.
func (g *Guard) Breaker() *CircuitBreaker {
	if g == nil {
		return nil
	}
	return g.breaker
}
