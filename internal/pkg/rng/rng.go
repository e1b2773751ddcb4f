// Package rng provides a seedable random source so probabilistic decisions
// (mid-tier invite acceptance, response chance) are reproducible in tests.
package rng

import (
	"math/rand"
	"sync"
)

//go:generate mockgen -destination=mock/mock.go -package=rngmock github.com/openrune/botcore/internal/pkg/rng Source

// Source produces random values for policy decisions
type Source interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// IntN returns a value in [0, n)
	IntN(n int) int
}

// Seeded implements Source with a locked math/rand generator
type Seeded struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeeded creates a source from the given seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a value in [0.0, 1.0)
func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// IntN returns a value in [0, n)
func (s *Seeded) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// Fixed always returns the same values, forcing one branch of a
// probabilistic decision in tests.
type Fixed struct {
	Value float64
	N     int
}

// Float64 returns the fixed value
func (f *Fixed) Float64() float64 { return f.Value }

// IntN returns the fixed value capped at n-1
func (f *Fixed) IntN(n int) int {
	if f.N >= n {
		return n - 1
	}
	return f.N
}
