package imageprovider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreaker_AvailableByDefault(t *testing.T) {
	b := NewBreaker()
	assert.True(t, b.IsAvailable("unsplash"))
	assert.True(t, b.IsAvailable("pexels"))
}

func TestBreaker_SuspendsForCooldown(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	b := NewBreakerWithClock(func() time.Time { return current })

	b.MarkRateLimited("unsplash")

	assert.False(t, b.IsAvailable("unsplash"), "provider should be suspended right after a rate limit")
	assert.True(t, b.IsAvailable("pexels"), "other providers are unaffected")

	// One second short of the cooldown: still suspended
	current = current.Add(rateLimitCooldown - time.Second)
	assert.False(t, b.IsAvailable("unsplash"))

	// At the deadline the provider becomes available again
	current = current.Add(time.Second)
	assert.True(t, b.IsAvailable("unsplash"))
}

func TestBreaker_RepeatedRateLimitExtendsDeadline(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	b := NewBreakerWithClock(func() time.Time { return current })

	b.MarkRateLimited("pixabay")
	current = current.Add(30 * time.Minute)
	b.MarkRateLimited("pixabay")

	// The second mark restarts the full cooldown window
	current = current.Add(rateLimitCooldown - time.Minute)
	assert.False(t, b.IsAvailable("pixabay"))
	current = current.Add(time.Minute)
	assert.True(t, b.IsAvailable("pixabay"))
}
