// Package gameid generates sortable identifiers for played rounds.
//
// IDs are UUIDv7 values encoded as 26 lowercase Crockford base32
// characters, so they sort by creation time and are short enough to show in
// the UI and logs.
package gameid

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an encoded ID
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// RandSource interface for dependency injection of randomness
type RandSource interface {
	IntN(n int) int
}

// Generator produces round IDs from a configurable source of randomness
type Generator struct {
	reader io.Reader
}

// NewGenerator creates a generator. A nil source uses crypto/rand.
func NewGenerator(src RandSource) *Generator {
	if src == nil {
		return &Generator{reader: rand.Reader}
	}
	return &Generator{reader: sourceReader{src}}
}

// Generate creates a new ID using crypto/rand
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new ID from the generator's randomness
func (g *Generator) Generate() string {
	id, err := uuid.NewV7FromReader(g.reader)
	if err != nil {
		panic("failed to generate round id: " + err.Error())
	}
	return Encode(id)
}

// Encode renders a UUID in the 26-character base32 form
func Encode(id uuid.UUID) string {
	return encoding.EncodeToString(id[:])
}

// Decode parses an encoded ID back into its UUID
func Decode(s string) (uuid.UUID, error) {
	if err := Validate(s); err != nil {
		return uuid.Nil, err
	}
	raw, err := encoding.DecodeString(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("decode round id: %w", err)
	}
	return uuid.FromBytes(raw)
}

// Validate checks if an ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}

	for i := 0; i < len(id); i++ {
		if !validChar(id[i]) {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}

	return nil
}

func validChar(c byte) bool {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == c {
			return true
		}
	}
	return false
}

// sourceReader adapts a RandSource into the io.Reader uuid expects
type sourceReader struct {
	src RandSource
}

func (r sourceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.src.IntN(256))
	}
	return len(p), nil
}
