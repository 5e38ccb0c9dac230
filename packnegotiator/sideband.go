package packnegotiator

import (
	"errors"
	"fmt"
	"io"

	"github.com/gitwire-go/gitwire/log"
	"github.com/gitwire-go/gitwire/pktline"
)

// Stream codes used by the side-band-64k capability to multiplex the
// packfile section: each pkt-line payload during transfer carries one of
// these as its leading byte.
const (
	streamPackData = 1
	streamProgress = 2
	streamFatal    = 3
)

// sidebandReader implements io.Reader over a pktline.Decoder, yielding only
// the pack-data stream. Progress lines are forwarded to the logger; a fatal
// line becomes the terminal error.
type sidebandReader struct {
	dec    *pktline.Decoder
	logger log.Logger
	buf    []byte
	err    error
}

func newSidebandReader(dec *pktline.Decoder, logger log.Logger) *sidebandReader {
	return &sidebandReader{dec: dec, logger: logger}
}

func (s *sidebandReader) Read(p []byte) (int, error) {
	for len(s.buf) == 0 {
		if s.err != nil {
			return 0, s.err
		}

		pkt, err := s.dec.ReadRaw()
		if err != nil {
			return 0, err
		}
		if pkt.IsFlush() {
			s.err = io.EOF
			continue
		}
		if len(pkt.Data) == 0 {
			continue
		}

		switch pkt.Data[0] {
		case streamPackData:
			s.buf = pkt.Data[1:]
		case streamProgress:
			if s.logger != nil {
				s.logger.Debug("remote progress", "message", string(pkt.Data[1:]))
			}
		case streamFatal:
			s.err = fmt.Errorf("packnegotiator: remote error: %s", pkt.Data[1:])
		default:
			return 0, errors.New("packnegotiator: invalid side-band stream code")
		}
	}

	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	return n, nil
}
