package id

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
)

func TestNewIDFormat(t *testing.T) {
	id, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if strings.Contains(id, "=") {
		t.Fatal("expected no padding")
	}
	if len(id) != 26 {
		t.Fatalf("expected 26-character id, got %d", len(id))
	}
	for _, r := range id {
		if (r < 'a' || r > 'z') && (r < '2' || r > '7') {
			t.Fatalf("unexpected character %q in id", r)
		}
	}
}

func TestNewIDSetsUUIDVersionAndVariant(t *testing.T) {
	id, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}

	decoded, err := encoding.DecodeString(strings.ToUpper(id))
	if err != nil {
		t.Fatalf("decode id: %v", err)
	}
	if len(decoded) != 16 {
		t.Fatalf("expected 16 decoded bytes, got %d", len(decoded))
	}
	if version := decoded[6] >> 4; version != 4 {
		t.Fatalf("expected version 4, got %d", version)
	}
	if variant := decoded[8] & 0xC0; variant != 0x80 {
		t.Fatalf("expected variant 0x80, got 0x%X", variant)
	}
}

func TestGeneratorIsReproducible(t *testing.T) {
	first := Generator(rand.New(rand.NewSource(9)))
	second := Generator(rand.New(rand.NewSource(9)))

	for i := 0; i < 3; i++ {
		a, err := first()
		if err != nil {
			t.Fatalf("first generator: %v", err)
		}
		b, err := second()
		if err != nil {
			t.Fatalf("second generator: %v", err)
		}
		if a != b {
			t.Fatalf("expected identical ids, got %q and %q", a, b)
		}
	}
}

func TestGeneratorFailsOnShortReader(t *testing.T) {
	gen := Generator(bytes.NewReader([]byte{1, 2, 3}))
	if _, err := gen(); err == nil {
		t.Fatal("expected error from exhausted reader")
	}
}
