package machine

import (
	"math/rand/v2"
	"time"
)

// RandomSource provides the random bytes for the RND instruction.
type RandomSource interface {
	Byte() byte
}

// pcgSource is a RandomSource based on a PCG generator.
type pcgSource struct {
	rng *rand.Rand
}

// NewRandom returns a RandomSource seeded with the given seed. A seed of 0
// selects a seed based on the current time, any other seed returns the same
// sequence every time.
func NewRandom(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &pcgSource{
		rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

// Byte returns a uniformly distributed random byte.
func (s *pcgSource) Byte() byte {
	return byte(s.rng.UintN(256))
}
