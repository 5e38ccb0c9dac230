package connection

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopCloser struct {
	io.Reader
	closed *bool
}

func (n nopCloser) Close() error {
	*n.closed = true
	return nil
}

type nopWriteCloser struct {
	*bytes.Buffer
	closed *bool
}

func (n nopWriteCloser) Close() error {
	*n.closed = true
	return nil
}

func TestClose_FlushesAndClosesIdempotently(t *testing.T) {
	inClosed, outClosed := false, false
	in := nopCloser{Reader: bytes.NewReader(nil), closed: &inClosed}
	var buf bytes.Buffer
	out := nopWriteCloser{Buffer: &buf, closed: &outClosed}

	l := New(context.Background(), in, out, 0)

	require.NoError(t, l.Close(true))
	assert.True(t, inClosed)
	assert.True(t, outClosed)
	assert.Equal(t, "0000", buf.String())

	// Idempotent: second close is a no-op, doesn't panic or double-flush.
	require.NoError(t, l.Close(true))
	assert.Equal(t, "0000", buf.String())
}

func TestClose_NoFlushWhenNotRequested(t *testing.T) {
	inClosed, outClosed := false, false
	in := nopCloser{Reader: bytes.NewReader(nil), closed: &inClosed}
	var buf bytes.Buffer
	out := nopWriteCloser{Buffer: &buf, closed: &outClosed}

	l := New(context.Background(), in, out, 0)
	require.NoError(t, l.Close(false))
	assert.Empty(t, buf.String())
}
