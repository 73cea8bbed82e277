package scoring

import (
	"math/rand"
	"sync"
	"time"
)

// Random is a mutex-guarded math/rand source. It is safe for concurrent use;
// a fixed seed reproduces the same draws only when calls are made in the same order.
type Random struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom creates a source seeded with seed.
func NewRandom(seed int64) *Random {
	return &Random{rnd: rand.New(rand.NewSource(seed))}
}

// NewRandomFromTime creates a source seeded from the wall clock.
func NewRandomFromTime() *Random {
	return NewRandom(time.Now().UnixNano())
}

// UniformInt returns an integer in [lo, hi]. A reversed range returns lo.
func (r *Random) UniformInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.rnd.Intn(hi-lo+1)
}
