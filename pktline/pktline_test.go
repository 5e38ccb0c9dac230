package pktline

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []string{
		"hello\n",
		"",
		"a",
		"version 2",
		"command=ls-refs\n",
	}

	for _, payload := range cases {
		var buf bytes.Buffer
		enc := NewEncoder(&buf)
		require.NoError(t, enc.Write([]byte(payload)))

		dec := NewDecoder(&buf)
		pkt, err := dec.ReadRaw()
		require.NoError(t, err)
		assert.Equal(t, KindData, pkt.Kind)
		assert.Equal(t, payload, pkt.Text())
	}
}

func TestFlushAndDelimSentinels(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.NoError(t, enc.Flush())
	require.NoError(t, enc.Delim())
	assert.Equal(t, "00000001", buf.String())

	dec := NewDecoder(&buf)
	flush, err := dec.Read()
	require.NoError(t, err)
	assert.True(t, flush.IsFlush())

	delim, err := dec.Read()
	require.NoError(t, err)
	assert.True(t, delim.IsDelim())
}

func TestTrailingNewlineStripped(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf).WriteString("hello\n"))

	pkt, err := NewDecoder(&buf).Read()
	require.NoError(t, err)
	assert.Equal(t, "hello", pkt.Text())
}

func TestRawKeepsNewline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf).WriteString("hello\n"))

	pkt, err := NewDecoder(&buf).ReadRaw()
	require.NoError(t, err)
	assert.Equal(t, "hello\n", pkt.Text())
}

func TestInvalidHeaderNonHex(t *testing.T) {
	for _, hdr := range []string{"zzzz", "12-4", "    ", "12G4"} {
		r := bytes.NewReader([]byte(hdr))
		_, err := NewDecoder(r).Read()
		assert.ErrorIs(t, err, ErrInvalidPacketHeader, "header %q", hdr)
		assert.Equal(t, 0, r.Len(), "decoder must consume exactly 4 bytes for header %q", hdr)
	}
}

func TestInvalidHeaderLengthTwoOrThree(t *testing.T) {
	for _, hdr := range []string{"0002", "0003"} {
		_, err := NewDecoder(bytes.NewReader([]byte(hdr))).Read()
		assert.ErrorIs(t, err, ErrInvalidPacketHeader)
	}
}

func TestLengthFourIsEmptyDataRecord(t *testing.T) {
	pkt, err := NewDecoder(bytes.NewReader([]byte("0004"))).Read()
	require.NoError(t, err)
	assert.Equal(t, KindData, pkt.Kind)
	assert.Empty(t, pkt.Data)
}

func TestInputOverLimitDisablesFurtherReads(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.NoError(t, enc.WriteString("0123456789"))
	require.NoError(t, enc.Flush())

	dec := NewDecoder(&buf)
	dec.SetLimit(5)

	_, err := dec.Read()
	assert.ErrorIs(t, err, ErrInputOverLimit)

	_, err = dec.Read()
	assert.ErrorIs(t, err, ErrInputOverLimit, "decoder must stay disabled after exceeding the limit")
}

func TestDataTooLargeRejectedByEncoder(t *testing.T) {
	var buf bytes.Buffer
	err := NewEncoder(&buf).Write(make([]byte, MaxDataSize+1))
	assert.ErrorIs(t, err, ErrDataTooLarge)
}

func TestUnexpectedEOFMidPayload(t *testing.T) {
	// Declares 20 bytes of payload but supplies none.
	_, err := NewDecoder(bytes.NewReader([]byte("0018"))).Read()
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestMinimalV0Advertisement(t *testing.T) {
	// Exercises the concrete scenario from spec.md §8.1 at the framing layer:
	// a single capabilities^{} placeholder line followed by flush.
	payload := "0000000000000000000000000000000000000000 capabilities^{}\x00multi_ack thin-pack ofs-delta agent=git/2.0\n"
	var wire bytes.Buffer
	enc := NewEncoder(&wire)
	require.NoError(t, enc.WriteString(payload))
	require.NoError(t, enc.Flush())

	dec := NewDecoder(&wire)
	first, err := dec.ReadRaw()
	require.NoError(t, err)
	assert.Equal(t, payload, first.Text())

	end, err := dec.Read()
	require.NoError(t, err)
	assert.True(t, end.IsFlush())
}
