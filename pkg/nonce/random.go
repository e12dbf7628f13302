package nonce

import (
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// MinRandom is the smallest nonce Random returns.
	MinRandom int64 = 10_000_000

	// MaxRandom is the exclusive upper bound of the nonces Random returns.
	MaxRandom int64 = 100_000_000
)

// Random generates 8-digit nonces drawn uniformly from [MinRandom, MaxRandom).
// It is safe for concurrent use.
type Random struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom returns a Random backed by the process-wide math/rand/v2 source.
func NewRandom() *Random {
	return &Random{}
}

// NewSeededRandom returns a Random with a deterministic sequence, for tests.
func NewSeededRandom(seed1, seed2 uint64) *Random {
	return &Random{rnd: rand.New(rand.NewPCG(seed1, seed2))}
}

func (ng *Random) Nonce() int64 {
	if ng.rnd == nil {
		return MinRandom + rand.Int64N(MaxRandom-MinRandom)
	}

	ng.mu.Lock()
	defer ng.mu.Unlock()
	return MinRandom + ng.rnd.Int64N(MaxRandom-MinRandom)
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
