// Package connection owns the input/output byte streams of one Smart
// Transport session: deadline-based cooperative cancellation in place of a
// timer thread, and an idempotent close that flushes the outbound side
// before tearing down.
package connection

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/gitwire-go/gitwire/pktline"
)

// ErrTimeout is returned when a blocked read or write exceeds the configured
// deadline.
var ErrTimeout = errors.New("connection: timeout")

// deadlineReader/deadlineWriter are satisfied by the streams produced by most
// transports (net.Conn, http response bodies via a pipe, etc). When the
// underlying stream doesn't support per-call deadlines, no per-call timeout
// is applied; such a stream is only unblocked by the watchdog closing it on
// context cancellation.
type deadlineReader interface {
	io.Reader
	SetReadDeadline(t time.Time) error
}

type deadlineWriter interface {
	io.Writer
	SetWriteDeadline(t time.Time) error
}

// Lifecycle owns a connection's input and output streams for the duration of
// one fetch. A single goroutine drives it from New to Close; it is not safe
// for concurrent use (spec.md §5: the connection engine is single-threaded).
type Lifecycle struct {
	in      io.ReadCloser
	out     io.WriteCloser
	timeout time.Duration

	Decoder *pktline.Decoder
	Encoder *pktline.Encoder

	mu     sync.Mutex
	closed bool
	cancel context.CancelFunc
}

// New wraps in/out with pkt-line codecs. If timeout > 0, streams implementing
// SetReadDeadline/SetWriteDeadline get that deadline set per call, and a
// background watchdog is started that closes both streams once ctx is
// cancelled, which blocked I/O observes as a "stream closed" error. Reads and
// writes on streams without deadline support are not bounded by timeout
// itself; only ctx cancellation (or Close) unblocks them.
func New(ctx context.Context, in io.ReadCloser, out io.WriteCloser, timeout time.Duration) *Lifecycle {
	l := &Lifecycle{in: in, out: out, timeout: timeout}
	l.Decoder = pktline.NewDecoder(&deadlineBoundReader{l: l, r: in})
	l.Encoder = pktline.NewEncoder(&deadlineBoundWriter{l: l, w: out})

	if timeout > 0 {
		watchCtx, cancel := context.WithCancel(ctx)
		l.cancel = cancel
		go l.watchdog(watchCtx)
	}

	return l
}

// watchdog is the fallback cancellation path for streams without per-call
// deadline support: it closes both streams if ctx is cancelled (caller
// teardown) so any in-flight read/write unblocks with a "closed" error
// instead of hanging forever.
func (l *Lifecycle) watchdog(ctx context.Context) {
	<-ctx.Done()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	_ = l.out.Close()
	_ = l.in.Close()
}

// deadlineBoundReader/Writer apply the per-call deadline when the underlying
// stream supports it (net.Conn and similar), and are otherwise transparent.
type deadlineBoundReader struct {
	l *Lifecycle
	r io.Reader
}

func (d *deadlineBoundReader) Read(p []byte) (int, error) {
	if d.l.timeout > 0 {
		if dr, ok := d.r.(deadlineReader); ok {
			_ = dr.SetReadDeadline(time.Now().Add(d.l.timeout))
		}
	}
	n, err := d.r.Read(p)
	if err != nil && isTimeout(err) {
		return n, ErrTimeout
	}
	return n, err
}

type deadlineBoundWriter struct {
	l *Lifecycle
	w io.Writer
}

func (d *deadlineBoundWriter) Write(p []byte) (int, error) {
	if d.l.timeout > 0 {
		if dw, ok := d.w.(deadlineWriter); ok {
			_ = dw.SetWriteDeadline(time.Now().Add(d.l.timeout))
		}
	}
	n, err := d.w.Write(p)
	if err != nil && isTimeout(err) {
		return n, ErrTimeout
	}
	return n, err
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// Close flushes the outbound side (if still open and the phase requires a
// trailing flush) and closes both streams, swallowing I/O errors. It is
// idempotent: subsequent calls are no-ops.
func (l *Lifecycle) Close(flushBeforeClose bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true

	if flushBeforeClose {
		_ = l.Encoder.Flush() // swallow: close proceeds regardless
	}

	_ = l.out.Close()
	_ = l.in.Close()

	if l.cancel != nil {
		l.cancel()
	}

	return nil
}
