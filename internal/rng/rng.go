// Package rng provides a deterministic pseudo-random number generator for
// world generation. It implements PCG XSH-RR (64-bit state, 32-bit output),
// chosen for its small state, speed, and bit-exact reproducibility across
// platforms. The same seed always yields the same sequence, which is what
// makes seeds shareable and saves replayable.
package rng

import "math/bits"

// PCG multiplier constant.
const multiplier = 6364136223846793005

// RNG is a PCG XSH-RR generator. The full generator state is two 64-bit
// words (state and increment); saving and restoring them resumes the exact
// sequence.
type RNG struct {
	state     uint64
	increment uint64 // stream selector, always odd
}

// New creates a generator seeded with the given value on the default stream.
func New(seed uint64) *RNG {
	r := &RNG{increment: 1}
	r.SetSeed(seed)
	return r
}

// NewWithStream creates a generator on a specific stream. Different streams
// produce independent sequences from the same seed.
func NewWithStream(seed, stream uint64) *RNG {
	r := &RNG{increment: (stream << 1) | 1}
	r.SetSeed(seed)
	return r
}

// SetSeed resets the generator to the start of the sequence for seed.
// The state is mixed by advancing once from zero, adding the seed, and
// advancing again, which avoids weak low-entropy seed values.
func (r *RNG) SetSeed(seed uint64) {
	r.state = 0
	r.Next()
	r.state += seed
	r.Next()
}

// SetSeedWithStream selects a stream and reseeds. The stream value is
// mapped to an odd increment.
func (r *RNG) SetSeedWithStream(seed, stream uint64) {
	r.increment = (stream << 1) | 1
	r.SetSeed(seed)
}

// Next returns the next uniformly distributed 32-bit value. All other
// draw methods are built on it.
func (r *RNG) Next() uint32 {
	old := r.state
	r.state = old*multiplier + r.increment
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := int(old >> 59)
	return bits.RotateLeft32(xorshifted, -rot)
}

// NextFloat returns a float32 in [0, 1) using 24 bits of the draw.
func (r *RNG) NextFloat() float32 {
	return float32(r.Next()>>8) * (1.0 / float32(1<<24))
}

// NextDouble returns a float64 in [0, 1) built from two draws for 53-bit
// precision.
func (r *RNG) NextDouble() float64 {
	a := uint64(r.Next())
	b := uint64(r.Next())
	combined := (a << 21) ^ b
	return float64(combined) * (1.0 / float64(uint64(1)<<53))
}

// NextInt returns a uniformly distributed int in [min, max] inclusive.
// Reversed bounds are swapped.
func (r *RNG) NextInt(min, max int) int {
	if min > max {
		min, max = max, min
	}
	span := uint32(max - min + 1)
	return min + int(r.NextBounded(span))
}

// NextBounded returns a uniformly distributed value in [0, bound) using
// Lemire's nearly divisionless rejection method. A bound of zero returns
// zero.
func (r *RNG) NextBounded(bound uint32) uint32 {
	if bound == 0 {
		return 0
	}
	random := uint64(r.Next())
	multiresult := random * uint64(bound)
	leftover := uint32(multiresult)
	if leftover < bound {
		threshold := (-bound) % bound
		for leftover < threshold {
			random = uint64(r.Next())
			multiresult = random * uint64(bound)
			leftover = uint32(multiresult)
		}
	}
	return uint32(multiresult >> 32)
}

// NextFloatRange returns a float32 in [min, max].
func (r *RNG) NextFloatRange(min, max float32) float32 {
	return min + r.NextFloat()*(max-min)
}

// NextBool returns true with the given probability.
func (r *RNG) NextBool(probability float32) bool {
	return r.NextFloat() < probability
}

// SelectWeighted picks an index with probability proportional to its
// weight, consuming exactly one draw. Empty or non-positive-sum weight
// slices select index 0.
func (r *RNG) SelectWeighted(weights []float64) int {
	if len(weights) == 0 {
		return 0
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	target := float64(r.NextFloat()) * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return i
		}
	}
	// Floating-point edge case: target landed on the total.
	return len(weights) - 1
}

// Shuffle permutes the slice in place using Fisher-Yates.
func Shuffle[T any](r *RNG, s []T) {
	for i := len(s); i > 1; i-- {
		j := r.NextBounded(uint32(i))
		s[i-1], s[j] = s[j], s[i-1]
	}
}

// State returns the two 64-bit words that fully describe the generator.
func (r *RNG) State() (state, increment uint64) {
	return r.state, r.increment
}

// Restore resumes the exact sequence captured by a previous State call.
func (r *RNG) Restore(state, increment uint64) {
	r.state = state
	r.increment = increment
}
