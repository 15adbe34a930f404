// Package id generates URL-safe participant identifiers.
//
// Identifiers are UUIDv4 values encoded as lowercase base32 (RFC 4648)
// with no padding, 26 characters long.
package id

import (
	"encoding/base32"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID generates an identifier from crypto/rand.
func NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return encode(u), nil
}

// Generator returns an id generator that draws its bytes from r.
// A seeded reader yields a reproducible id sequence.
func Generator(r io.Reader) func() (string, error) {
	return func() (string, error) {
		u, err := uuid.NewRandomFromReader(r)
		if err != nil {
			return "", fmt.Errorf("generate uuid: %w", err)
		}
		return encode(u), nil
	}
}

func encode(u uuid.UUID) string {
	return strings.ToLower(encoding.EncodeToString(u[:]))
}
