package procgen

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// RNG is the single random source threaded through dungeon generation. Every
// roll, including entity ids, comes from the same ChaCha8 stream so a seed
// fully determines the output.
type RNG struct {
	src *rand.ChaCha8
	r   *rand.Rand
}

// NewRNG returns a generator seeded from seed.
func NewRNG(seed uint64) *RNG {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return newRNG(rand.NewChaCha8(key))
}

// NewRandomRNG returns a generator seeded from the operating system.
func NewRandomRNG() *RNG {
	var key [32]byte
	_, _ = crand.Read(key[:])
	return newRNG(rand.NewChaCha8(key))
}

func newRNG(src *rand.ChaCha8) *RNG {
	return &RNG{src: src, r: rand.New(src)}
}

// IntN returns a value in [0, n). It panics if n <= 0.
func (g *RNG) IntN(n int) int {
	return g.r.IntN(n)
}

// Range returns a value in [lo, hi], both inclusive.
func (g *RNG) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.r.IntN(hi-lo+1)
}

// Bool returns a coin flip.
func (g *RNG) Bool() bool {
	return g.r.IntN(2) == 0
}

// NewID mints a uuid from the generator stream.
func (g *RNG) NewID() string {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		// ChaCha8.Read never fails.
		panic(fmt.Sprintf("reading id from rng: %v", err))
	}
	return id.String()
}

// MarshalBinary captures the generator state.
func (g *RNG) MarshalBinary() ([]byte, error) {
	return g.src.MarshalBinary()
}

// UnmarshalBinary restores a state captured by MarshalBinary.
func (g *RNG) UnmarshalBinary(b []byte) error {
	src := &rand.ChaCha8{}
	if err := src.UnmarshalBinary(b); err != nil {
		return fmt.Errorf("restoring rng state: %w", err)
	}
	*g = *newRNG(src)
	return nil
}
