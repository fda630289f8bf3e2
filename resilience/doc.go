// Package resilience guards the outbound exchanges of a bound client.
//
// Two patterns are available and both are opt-in:
//   - CircuitBreaker: fails fast once the server has failed repeatedly
//   - RateLimiter: spaces exchanges with a token bucket
//
// Guard composes them in the order an exchange needs: wait for a token,
// then pass through the breaker.
//
//	g := resilience.NewGuard(
//	    &resilience.CircuitBreakerConfig{Name: "catalog", MaxFailures: 3},
//	    &resilience.RateLimiterConfig{Name: "catalog", Rate: 50, Burst: 10},
//	)
//	err := g.Do(ctx, func() error { return send(ctx) })
//
// Neither pattern retries. A failed exchange is reported once.
package resilience
