// selector.go: randomized rotation over the currently-available providers
package imageprovider

import (
	"math/rand"
	"sync"
)

// Selector returns the available providers in a uniformly randomized
// order so query load spreads across them.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a Selector seeded from the given source. Tests
// pass a fixed seed to get deterministic ordering.
func NewSelector(seed int64) *Selector {
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}

// Select filters out unconfigured providers and providers suspended by
// the breaker, then shuffles the survivors. Every available provider
// appears exactly once; zero survivors yields an empty slice.
func (s *Selector) Select(providers []Provider, breaker *Breaker) []Provider {
	available := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if !p.Configured() {
			continue
		}
		if breaker != nil && !breaker.IsAvailable(p.Name()) {
			continue
		}
		available = append(available, p)
	}

	s.mu.Lock()
	s.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	s.mu.Unlock()

	return available
}

// intn returns a pseudo-random int in [0, n) from the selector's source.
func (s *Selector) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// shuffleStrings shuffles a string slice in place using the selector's source.
func (s *Selector) shuffleStrings(items []string) {
	s.mu.Lock()
	s.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	s.mu.Unlock()
}
