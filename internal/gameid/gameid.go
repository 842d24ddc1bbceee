// Package gameid generates sortable hand identifiers: a UUIDv7 encoded as
// 26 lowercase Crockford base32 characters.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/coder/quartz"
)

const (
	alphabet = "0123456789abcdefghjkmnpqrstvwxyz"
	length   = 26
)

// RandSource supplies the random half of an ID. *rand.Rand from math/rand/v2
// satisfies it.
type RandSource interface {
	Uint64() uint64
}

// Generator creates hand IDs. With a nil RandSource it reads crypto/rand.
type Generator struct {
	rand  RandSource
	clock quartz.Clock
}

// NewGenerator creates a generator on the real clock.
func NewGenerator(src RandSource) *Generator {
	return &Generator{rand: src, clock: quartz.NewReal()}
}

// WithClock returns a copy of the generator reading time from clock.
func (g *Generator) WithClock(clock quartz.Clock) *Generator {
	return &Generator{rand: g.rand, clock: clock}
}

// Generate returns a new ID from crypto randomness.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate returns a new ID.
func (g *Generator) Generate() string {
	return encode(g.uuid())
}

func (g *Generator) uuid() [16]byte {
	var id [16]byte

	ms := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.rand == nil {
		if _, err := rand.Read(id[6:]); err != nil {
			panic("gameid: reading random bytes: " + err.Error())
		}
	} else {
		hi, lo := g.rand.Uint64(), g.rand.Uint64()
		for i := 0; i < 2; i++ {
			id[6+i] = byte(hi >> (8 * i))
		}
		for i := 0; i < 8; i++ {
			id[8+i] = byte(lo >> (8 * i))
		}
	}

	id[6] = id[6]&0x0f | 0x70 // version 7
	id[8] = id[8]&0x3f | 0x80 // RFC 4122 variant
	return id
}

// encode writes the 128 bits as 26 five-bit groups, most significant first.
// The final group carries two padding bits.
func encode(id [16]byte) string {
	out := make([]byte, length)
	for i := range out {
		bit := i * 5
		byteIdx, shift := bit/8, bit%8

		v := uint16(id[byteIdx]) << 8
		if byteIdx+1 < len(id) {
			v |= uint16(id[byteIdx+1])
		}
		out[i] = alphabet[(v>>(11-shift))&0x1f]
	}
	return string(out)
}

// Timestamp extracts the creation time from an ID.
func Timestamp(id string) (time.Time, error) {
	if err := Validate(id); err != nil {
		return time.Time{}, err
	}
	// 48 timestamp bits span the first ten characters (50 bits).
	var v uint64
	for _, c := range id[:10] {
		v = v<<5 | uint64(strings.IndexRune(alphabet, c))
	}
	return time.UnixMilli(int64(v >> 2)), nil
}

// Validate checks that id is 26 base32 characters.
func Validate(id string) error {
	if len(id) != length {
		return fmt.Errorf("hand ID must be %d characters, got %d", length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("hand ID must start with 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
