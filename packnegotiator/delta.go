package packnegotiator

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrMalformedDelta is returned when a delta instruction stream is
// truncated or names an out-of-range copy.
var ErrMalformedDelta = errors.New("packnegotiator: malformed delta")

// applyDelta reconstructs an object from base and Git's delta encoding
// (https://git-scm.com/docs/pack-format, "deltified representation"): a
// source-size varint, a target-size varint, then a sequence of copy and
// insert instructions.
func applyDelta(base, delta []byte) ([]byte, error) {
	srcSize, rest, err := readDeltaSize(delta)
	if err != nil {
		return nil, err
	}
	if srcSize != uint64(len(base)) {
		return nil, fmt.Errorf("%w: source size %d does not match base %d", ErrMalformedDelta, srcSize, len(base))
	}

	targetSize, rest, err := readDeltaSize(rest)
	if err != nil {
		return nil, err
	}

	out := bytes.NewBuffer(make([]byte, 0, targetSize))

	for len(rest) > 0 {
		op := rest[0]
		rest = rest[1:]

		if op&0x80 != 0 {
			// Copy instruction: op's low 7 bits select which of the
			// following offset/size bytes are present.
			var offset, size uint32
			for i := uint(0); i < 4; i++ {
				if op&(1<<i) != 0 {
					if len(rest) == 0 {
						return nil, ErrMalformedDelta
					}
					offset |= uint32(rest[0]) << (8 * i)
					rest = rest[1:]
				}
			}
			for i := uint(0); i < 3; i++ {
				if op&(1<<(4+i)) != 0 {
					if len(rest) == 0 {
						return nil, ErrMalformedDelta
					}
					size |= uint32(rest[0]) << (8 * i)
					rest = rest[1:]
				}
			}
			if size == 0 {
				size = 0x10000
			}
			if uint64(offset)+uint64(size) > uint64(len(base)) {
				return nil, fmt.Errorf("%w: copy [%d:%d] exceeds base length %d", ErrMalformedDelta, offset, offset+size, len(base))
			}
			out.Write(base[offset : offset+size])

		} else if op != 0 {
			// Insert instruction: op itself is the literal byte count.
			n := int(op)
			if len(rest) < n {
				return nil, ErrMalformedDelta
			}
			out.Write(rest[:n])
			rest = rest[n:]

		} else {
			return nil, fmt.Errorf("%w: reserved opcode 0", ErrMalformedDelta)
		}
	}

	if uint64(out.Len()) != targetSize {
		return nil, fmt.Errorf("%w: reconstructed %d bytes, want %d", ErrMalformedDelta, out.Len(), targetSize)
	}
	return out.Bytes(), nil
}

// readDeltaSize decodes a little-endian base-128 varint (7 bits per byte,
// high bit as continuation), used for the delta's source and target sizes.
func readDeltaSize(b []byte) (uint64, []byte, error) {
	var size uint64
	var shift uint
	for i, c := range b {
		size |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return size, b[i+1:], nil
		}
		shift += 7
	}
	return 0, nil, ErrMalformedDelta
}
