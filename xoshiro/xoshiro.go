// Package xoshiro implements the xoshiro256** generator used to drive
// deterministic ordering draws. Every consumer that starts from the same
// 32-byte seed observes the same draw sequence, across processes and
// platforms.
package xoshiro

import (
	"encoding/binary"
	"math/bits"

	"github.com/colorfulnotion/fairdex/sdkerrors"
)

// SeedSize is the required seed length in bytes.
const SeedSize = 32

// Source is a xoshiro256** generator. It is not safe for concurrent use;
// give each goroutine its own Source.
type Source struct {
	s [4]uint64
}

// New creates a Source from a 32-byte seed. The seed is split into four
// little-endian uint64 state words: word i comes from seed[8i:8i+8].
func New(seed []byte) (*Source, error) {
	if len(seed) != SeedSize {
		return nil, sdkerrors.ErrSInvalidSeed
	}
	x := &Source{}
	for i := 0; i < 4; i++ {
		x.s[i] = binary.LittleEndian.Uint64(seed[8*i : 8*i+8])
	}
	return x, nil
}

// NewFromWords creates a Source directly from four state words.
func NewFromWords(s [4]uint64) *Source {
	return &Source{s: s}
}

// Uint64 returns the next 64-bit output and advances the state.
func (x *Source) Uint64() uint64 {
	result := bits.RotateLeft64(x.s[1]*5, 7) * 9

	t := x.s[1] << 17
	x.s[2] ^= x.s[0]
	x.s[3] ^= x.s[1]
	x.s[1] ^= x.s[2]
	x.s[0] ^= x.s[3]
	x.s[2] ^= t
	x.s[3] = bits.RotateLeft64(x.s[3], 45)

	return result
}

// Uint32 returns the high 32 bits of the next output.
func (x *Source) Uint32() uint32 {
	return uint32(x.Uint64() >> 32)
}

// NextInRange returns a draw in [0, bound). It always consumes one
// generator step, even for bound 1, so that draw accounting stays in
// lockstep with other implementations. Panics if bound is 0.
func (x *Source) NextInRange(bound uint32) uint32 {
	if bound == 0 {
		panic(sdkerrors.ErrSZeroRange)
	}
	return x.Uint32() % bound
}
