// Package hash implements Git's object id: a 20-byte SHA-1 identifier rendered
// on the wire as a 40-character lowercase hexadecimal string.
package hash

import (
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
)

// Size is the length in bytes of a SHA-1 object id.
const Size = 20

// HexSize is the length of the hex-encoded form of an object id.
const HexSize = Size * 2

// ErrInvalidLength is returned when a hex string does not decode to exactly
// Size bytes.
var ErrInvalidLength = errors.New("hash: invalid object id length")

// Hash is a Git object id. The all-zero value is the sentinel "no object";
// it is the only encoding of absence, so callers must parse hex strings into
// a Hash before comparing rather than comparing hex strings directly.
type Hash []byte

// Zero is the all-zero object id, Git's sentinel for "no object".
var Zero = make(Hash, Size)

// FromHex parses a 40-character lowercase hex string into a Hash.
// An empty string decodes to Zero, matching Git's convention of an empty
// field standing in for the zero id in some wire records.
func FromHex(hs string) (Hash, error) {
	if len(hs) == 0 {
		return Zero, nil
	}

	if len(hs) != HexSize {
		return nil, fmt.Errorf("%w: got %d hex chars, want %d", ErrInvalidLength, len(hs), HexSize)
	}

	b, err := hex.DecodeString(hs)
	if err != nil {
		return nil, err
	}
	return Hash(b), nil
}

// MustFromHex is like FromHex but panics if the hex string is invalid.
// It is intended for use in tests and other situations where the hex string
// is known to be valid.
func MustFromHex(hs string) Hash {
	h, err := FromHex(hs)
	if err != nil {
		panic(err)
	}
	return h
}

// String renders the Hash as a 40-character lowercase hex string.
func (h Hash) String() string {
	return hex.EncodeToString(h)
}

// Is reports whether h and other encode the same object id.
func (h Hash) Is(other Hash) bool {
	return slices.Equal(h, other)
}

// IsZero reports whether h is the all-zero sentinel for "no object".
// A nil or empty Hash also counts as zero, since neither can name an object.
func (h Hash) IsZero() bool {
	if len(h) == 0 {
		return true
	}
	return h.Is(Zero)
}
