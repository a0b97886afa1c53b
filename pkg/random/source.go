// Package random provides the randomness abstraction used by scripts together
// with uniform draws and weighted selection built on top of it.
package random

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

// Source is the randomness provider for every draw made by this package.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a uniformly distributed value in [0, 1).
	Float64() float64
}

// float64Mantissa is 2^53, the number of distinct evenly spaced float64 values in [0, 1).
const float64Mantissa = 1 << 53

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are uniformly distributed in their range.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n); every value
// returned by Float64 is in [0, 1).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "random: Intn called with n <= 0" if n <= 0.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("random: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// Float64 returns a cryptographically secure float in [0, 1).
func (c *cryptoSource) Float64() float64 {
	val, err := rand.Int(rand.Reader, big.NewInt(float64Mantissa))
	if err != nil {
		panic("random: crypto/rand failure: " + err.Error())
	}
	return float64(val.Int64()) / float64Mantissa
}

// seededSource is a deterministic PCG-backed Source. The mutex makes the
// underlying generator safe for concurrent draws.
type seededSource struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewSeededSource returns a deterministic Source: two sources built from the
// same seed produce the same sequence of draws.
func NewSeededSource(seed uint64) Source {
	return &seededSource{rng: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn returns a pseudo-random int in [0, n).
//
// Precondition: n > 0. Panics if n <= 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Float64 returns a pseudo-random float in [0, 1).
func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}
