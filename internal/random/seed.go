// Package random provides seeded randomness for role assignment.
//
// A game draws every random decision from one *rand.Rand built from a
// seed, so replaying a game with the same seed deals the same roles.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Source returns a deterministic generator for seed. A zero seed is
// replaced by a fresh crypto seed, which is returned alongside.
func Source(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		fresh, err := NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = fresh
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}
