// Package dice produces the rolls that drive a trial.
package dice

import (
	"math/rand/v2"

	"github.com/aretw0/crapsim/pkg/domain"
)

// Source produces one roll of two six-sided dice per call.
type Source interface {
	Roll() domain.Roll
}

// Rand is a Source backed by a seeded PCG generator.
// It is not safe for concurrent use; give every trial its own.
type Rand struct {
	rng *rand.Rand
}

// New returns a deterministic Source for the given seed.
func New(seed uint64) *Rand {
	return &Rand{rng: rand.New(rand.NewPCG(seed, seed^pcgStream))}
}

const pcgStream = 0xda3e39cb94b95bdb

// Roll draws two independent uniform faces.
func (r *Rand) Roll() domain.Roll {
	return domain.Roll{
		D1: r.rng.IntN(6) + 1,
		D2: r.rng.IntN(6) + 1,
	}
}

// Stream derives independent per-trial seeds from one scenario seed.
// Trial i always gets the same seed regardless of which worker runs it.
type Stream struct {
	base uint64
}

// NewStream returns a Stream rooted at seed.
func NewStream(seed uint64) Stream {
	return Stream{base: seed}
}

// Seed returns the seed for trial i.
func (s Stream) Seed(i int) uint64 {
	return splitmix64(s.base + uint64(i)*0x9e3779b97f4a7c15)
}

// Source returns a fresh Source for trial i.
func (s Stream) Source(i int) Source {
	return New(s.Seed(i))
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// RandomSeed returns a seed drawn from the runtime's entropy source.
func RandomSeed() uint64 {
	return rand.Uint64()
}
