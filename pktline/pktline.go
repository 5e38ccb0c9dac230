// Package pktline implements Git's packet-line (pkt-line) framing: the
// length-prefixed record codec that underlies every Git smart protocol
// message (ref advertisements, ls-refs, and pack negotiation alike).
//
// A record is a 4-byte ASCII lowercase hex length, counting the length field
// itself, followed by that many bytes of payload. Two payload-less lengths
// are sentinels rather than data: 0000 is flush, 0001 is delim. Lengths 2
// and 3 are never valid.
//
// For the wire-format details, see:
//   - https://git-scm.com/docs/gitprotocol-common
//   - https://git-scm.com/docs/protocol-v2
package pktline

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	// lengthSize is the size of the length field in a record (4 ASCII hex digits).
	lengthSize = 4

	// MaxDataSize is the maximum size of a record's data component in bytes.
	MaxDataSize = 65516

	// MaxRecordSize is the maximum total size of a record, header included.
	MaxRecordSize = MaxDataSize + lengthSize
)

// ErrInvalidPacketHeader is returned when a 4-byte length header is not
// lowercase hex, or declares a length of 2 or 3 (neither a valid sentinel
// nor a valid data record).
var ErrInvalidPacketHeader = errors.New("pktline: invalid packet header")

// ErrInputOverLimit is returned when a configured byte limit would be
// exceeded by the next record. Once returned, the Decoder is done: further
// Read calls also fail.
var ErrInputOverLimit = errors.New("pktline: input over limit")

// ErrDataTooLarge is returned by Encoder.WriteString when the payload
// exceeds MaxDataSize.
var ErrDataTooLarge = errors.New("pktline: data too large")

// Kind distinguishes the three shapes a decoded record can take.
type Kind int

const (
	// KindData is an ordinary record carrying payload bytes.
	KindData Kind = iota
	// KindFlush is the 0000 sentinel marking a logical boundary or end-of-stream.
	KindFlush
	// KindDelim is the 0001 sentinel separating argument sections (protocol v2).
	KindDelim
)

// Packet is one decoded pkt-line record.
type Packet struct {
	Kind Kind
	// Data holds the payload for KindData records, with a trailing '\n'
	// stripped if present. Raw, un-stripped bytes are available by decoding
	// with ReadRaw instead of Read.
	Data []byte
}

// IsFlush reports whether p is the flush sentinel.
func (p Packet) IsFlush() bool { return p.Kind == KindFlush }

// IsDelim reports whether p is the delim sentinel.
func (p Packet) IsDelim() bool { return p.Kind == KindDelim }

// Text returns Data decoded as UTF-8 text. Decoding happens eagerly in
// Read/ReadRaw; this is a convenience accessor.
func (p Packet) Text() string { return string(p.Data) }

// Decoder reads a stream of pkt-line records synchronously off an
// underlying io.Reader. It performs no buffering beyond what a single
// record requires, and issues exactly one or more reads per record.
//
// A Decoder is not safe for concurrent use; a single connection is driven
// by a single goroutine (see the connection package).
type Decoder struct {
	r     io.Reader
	limit int64 // <=0 means unlimited
	read  int64
	done  bool // set once ErrInputOverLimit has fired; further reads fail
}

// NewDecoder returns a Decoder with no byte limit.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// SetLimit caps the total number of payload+header bytes the Decoder will
// read before failing with ErrInputOverLimit. A limit <= 0 disables the check.
func (d *Decoder) SetLimit(n int64) {
	d.limit = n
}

// Read decodes the next record, stripping a trailing '\n' from data
// payloads if present.
func (d *Decoder) Read() (Packet, error) {
	return d.read_(true)
}

// ReadRaw decodes the next record without stripping a trailing newline.
func (d *Decoder) ReadRaw() (Packet, error) {
	return d.read_(false)
}

func (d *Decoder) read_(stripNewline bool) (Packet, error) {
	if d.done {
		return Packet{}, ErrInputOverLimit
	}

	var hdr [lengthSize]byte
	if _, err := io.ReadFull(d.r, hdr[:]); err != nil {
		return Packet{}, err
	}

	length, err := parseHeader(hdr[:])
	if err != nil {
		return Packet{}, err
	}

	switch length {
	case 0:
		d.read += lengthSize
		return Packet{Kind: KindFlush}, nil
	case 1:
		d.read += lengthSize
		return Packet{Kind: KindDelim}, nil
	}

	if d.limit > 0 && d.read+int64(length) > d.limit {
		d.done = true
		return Packet{}, ErrInputOverLimit
	}

	dataLen := length - lengthSize
	data := make([]byte, dataLen)
	if _, err := io.ReadFull(d.r, data); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Packet{}, fmt.Errorf("pktline: read %d-byte payload: %w", dataLen, err)
	}
	d.read += int64(length)

	if stripNewline && len(data) > 0 && data[len(data)-1] == '\n' {
		data = data[:len(data)-1]
	}

	return Packet{Kind: KindData, Data: data}, nil
}

// parseHeader validates and decodes a 4-byte hex length header.
func parseHeader(hdr []byte) (int, error) {
	for _, c := range hdr {
		if !isLowerHex(c) {
			return 0, ErrInvalidPacketHeader
		}
	}

	length, err := strconv.ParseUint(string(hdr), 16, 32)
	if err != nil {
		return 0, ErrInvalidPacketHeader
	}

	if length == 2 || length == 3 {
		return 0, ErrInvalidPacketHeader
	}
	if length > MaxRecordSize {
		return 0, fmt.Errorf("pktline: record length %d exceeds maximum %d", length, MaxRecordSize)
	}

	return int(length), nil
}

func isLowerHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}

// Encoder writes pkt-line records to an underlying io.Writer. It is the
// inverse of Decoder: one WriteString/Flush/Delim call per record, no
// internal buffering.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WriteString encodes data as a single data record. A trailing newline is
// the caller's responsibility to include, matching Git's convention that
// text lines end in '\n'.
func (e *Encoder) WriteString(data string) error {
	return e.Write([]byte(data))
}

// Write encodes data as a single data record.
func (e *Encoder) Write(data []byte) error {
	if len(data) > MaxDataSize {
		return ErrDataTooLarge
	}
	out := make([]byte, 0, lengthSize+len(data))
	out = append(out, []byte(fmt.Sprintf("%04x", len(data)+lengthSize))...)
	out = append(out, data...)
	_, err := e.w.Write(out)
	return err
}

// Flush writes the 0000 flush sentinel.
func (e *Encoder) Flush() error {
	_, err := e.w.Write([]byte("0000"))
	return err
}

// Delim writes the 0001 delim sentinel, used in protocol v2 to separate
// argument sections within a command.
func (e *Encoder) Delim() error {
	_, err := e.w.Write([]byte("0001"))
	return err
}
