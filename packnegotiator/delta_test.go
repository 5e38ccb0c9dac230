package packnegotiator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func varint(n uint64) []byte {
	var out []byte
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if n == 0 {
			break
		}
	}
	return out
}

func TestApplyDelta_CopyAndInsert(t *testing.T) {
	base := []byte("hello world")

	var delta []byte
	delta = append(delta, varint(uint64(len(base)))...) // source size
	delta = append(delta, varint(17)...)                 // target size: "hello there world"

	// copy "hello " (offset 0, size 6): 0x80 | copy-bits for offset byte0 + size byte0
	delta = append(delta, 0x80|0x01|0x10, 0, 6)
	// insert "there "
	insert := []byte("there ")
	delta = append(delta, byte(len(insert)))
	delta = append(delta, insert...)
	// copy "world" (offset 6, size 5)
	delta = append(delta, 0x80|0x01|0x10, 6, 5)

	got, err := applyDelta(base, delta)
	require.NoError(t, err)
	assert.Equal(t, "hello there world", string(got))
}

func TestApplyDelta_RejectsMismatchedSourceSize(t *testing.T) {
	base := []byte("abc")
	var delta []byte
	delta = append(delta, varint(99)...)
	delta = append(delta, varint(3)...)

	_, err := applyDelta(base, delta)
	require.ErrorIs(t, err, ErrMalformedDelta)
}

func TestApplyDelta_RejectsCopyPastBaseEnd(t *testing.T) {
	base := []byte("abc")
	var delta []byte
	delta = append(delta, varint(uint64(len(base)))...)
	delta = append(delta, varint(5)...)
	delta = append(delta, 0x80|0x01|0x10, 0, 5) // copy 5 bytes from a 3-byte base

	_, err := applyDelta(base, delta)
	require.ErrorIs(t, err, ErrMalformedDelta)
}
