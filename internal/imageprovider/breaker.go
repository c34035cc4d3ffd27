// breaker.go: per-provider cooldown tracking for rate-limited providers
package imageprovider

import (
	"sync"
	"time"
)

// rateLimitCooldown is how long a provider stays suspended after a
// rate-limit response. Flat, no backoff; the quota windows of the
// supported providers are hourly.
const rateLimitCooldown = time.Hour

// Breaker tracks a cooldown deadline per provider. A provider with no
// recorded deadline is available.
type Breaker struct {
	mu        sync.RWMutex
	deadlines map[string]time.Time
	now       func() time.Time
}

// NewBreaker creates a Breaker using the wall clock.
func NewBreaker() *Breaker {
	return NewBreakerWithClock(time.Now)
}

// NewBreakerWithClock creates a Breaker with an injectable clock so
// tests can simulate cooldown expiry.
func NewBreakerWithClock(now func() time.Time) *Breaker {
	return &Breaker{
		deadlines: make(map[string]time.Time),
		now:       now,
	}
}

// IsAvailable reports whether the provider's cooldown, if any, has elapsed.
func (b *Breaker) IsAvailable(provider string) bool {
	b.mu.RLock()
	deadline, ok := b.deadlines[provider]
	b.mu.RUnlock()
	if !ok {
		return true
	}
	return !b.now().Before(deadline)
}

// MarkRateLimited suspends the provider for the cooldown window.
// Last writer wins; the deadline only moves forward in practice.
func (b *Breaker) MarkRateLimited(provider string) {
	deadline := b.now().Add(rateLimitCooldown)
	b.mu.Lock()
	b.deadlines[provider] = deadline
	b.mu.Unlock()

	imageLogger.Warn("Provider suspended after rate limit",
		"provider", provider,
		"until", deadline)
}
