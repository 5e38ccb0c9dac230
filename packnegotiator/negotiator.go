package packnegotiator

import (
	"context"
	"fmt"
	"strings"

	"github.com/gitwire-go/gitwire/capability"
	"github.com/gitwire-go/gitwire/log"
	"github.com/gitwire-go/gitwire/pktline"
	"github.com/gitwire-go/gitwire/protocol/hash"
	"github.com/gitwire-go/gitwire/storage"
)

// Negotiator is the default fetchplan.PackNegotiator: it speaks protocol
// v2's "fetch" command directly over enc/dec, which a caller has already
// advanced past capability advertisement (see connection.Lifecycle).
type Negotiator struct {
	Enc *pktline.Encoder
	Dec *pktline.Decoder

	Capabilities *capability.Set
	UserAgent    string
	Storage      storage.PackfileStorage
}

// Negotiate implements fetchplan.PackNegotiator. It sends one "want" per
// wanted object and one "have" per already-local object the planner offers,
// terminates the round with "done" (gitwire never streams multi-round
// negotiation; it always tells the peer everything it already has up
// front), then decodes the resulting packfile into Storage.
func (n *Negotiator) Negotiate(ctx context.Context, wants []hash.Hash, haves []hash.Hash) (bool, error) {
	logger := log.FromContext(ctx)

	if err := n.SendFetchCommand(wants, haves); err != nil {
		return false, fmt.Errorf("packnegotiator: sending fetch command: %w", err)
	}

	tagsIncluded, err := n.ReadResponse(logger)
	if err != nil {
		return false, fmt.Errorf("packnegotiator: reading fetch response: %w", err)
	}

	return tagsIncluded, nil
}

// SendFetchCommand builds and writes the fetch command request to Enc. It
// is split out from Negotiate so an HTTP-backed caller can build the full
// request body before issuing the POST and only then point Dec at the
// response bytes, since the HTTP smart transport has no live duplex stream.
func (n *Negotiator) SendFetchCommand(wants, haves []hash.Hash) error {
	if err := n.Enc.WriteString("command=fetch\n"); err != nil {
		return err
	}
	if n.Capabilities != nil && n.Capabilities.Has("agent") && n.UserAgent != "" {
		if err := n.Enc.WriteString(fmt.Sprintf("agent=%s\n", n.UserAgent)); err != nil {
			return err
		}
	}
	if err := n.Enc.Delim(); err != nil {
		return err
	}

	if err := n.Enc.WriteString("no-progress\n"); err != nil {
		return err
	}
	for _, w := range wants {
		if err := n.Enc.WriteString(fmt.Sprintf("want %s\n", w.String())); err != nil {
			return err
		}
	}
	for _, hv := range haves {
		if err := n.Enc.WriteString(fmt.Sprintf("have %s\n", hv.String())); err != nil {
			return err
		}
	}
	if err := n.Enc.WriteString("done\n"); err != nil {
		return err
	}

	return n.Enc.Flush()
}

// ReadResponse is the Dec-side counterpart of SendFetchCommand: it walks the
// response's sections (acknowledgments, optionally shallow-info/wanted-refs/
// packfile-uris, each delim-terminated) looking for the "packfile" header;
// gitwire always sends "done" up front, so it never needs to parse ACK/NAK
// lines itself. Protocol v2 has no capability that implicitly widens a fetch
// to include tags the way v1's include-tag did, so the returned bool is
// always false; it exists so a future capability (or a v0/v1 negotiator) has
// somewhere to report it.
func (n *Negotiator) ReadResponse(logger log.Logger) (bool, error) {
	for {
		pkt, err := n.Dec.Read()
		if err != nil {
			return false, err
		}
		if pkt.IsFlush() {
			return false, nil
		}
		if pkt.IsDelim() {
			continue
		}
		if strings.TrimSpace(pkt.Text()) != "packfile" {
			continue
		}

		sb := newSidebandReader(n.Dec, logger)
		count, err := decodePackfile(sb, n.Storage)
		if err != nil {
			return false, err
		}
		if logger != nil {
			logger.Debug("decoded packfile", "objectCount", count)
		}
		return false, nil
	}
}
