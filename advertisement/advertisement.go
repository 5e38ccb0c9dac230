// Package advertisement reads a Git peer's initial reference advertisement,
// auto-detecting protocol v0 (with or without a "version 1" banner) and v2,
// and resolving the symbolic refs it announces. For v2, the companion
// LsRefsRequester (lsrefs.go) drives the second phase that actually lists refs.
package advertisement

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gitwire-go/gitwire/capability"
	"github.com/gitwire-go/gitwire/pktline"
	"github.com/gitwire-go/gitwire/protocol/hash"
	"github.com/gitwire-go/gitwire/ref"
)

// Version is the negotiated Git smart-protocol version.
type Version int

const (
	// VersionV0 covers both the v0 and v1 wire forms; v1 differs only in an
	// extra "version 1" banner line and is otherwise parsed identically.
	VersionV0 Version = iota
	// VersionV2 requires a follow-up LsRefsRequester round to obtain refs.
	VersionV2
)

// ErrInvalidAdvertisement is returned for a malformed ref line, a duplicate
// ref name, a duplicate peel, or a duplicate ls-refs attribute.
var ErrInvalidAdvertisement = errors.New("advertisement: invalid advertisement")

// ErrNoRemoteRepository is returned when the stream closes (or flushes)
// before any record is read.
var ErrNoRemoteRepository = errors.New("advertisement: no remote repository")

// RemoteRepositoryError wraps an "ERR <msg>" record sent by the peer.
type RemoteRepositoryError struct {
	Message string
}

func (e *RemoteRepositoryError) Error() string {
	return fmt.Sprintf("advertisement: remote error: %s", e.Message)
}

const errPrefix = "ERR "

// Result is what the first advertisement phase produces. For VersionV2, Refs
// is nil: the caller must drive LsRefsRequester next.
type Result struct {
	Version      Version
	Capabilities *capability.Set
	Refs         *ref.Map
}

// Reader reads the advertisement phase off a pkt-line decoder.
type Reader struct {
	dec *pktline.Decoder
}

// NewReader returns a Reader consuming records from dec.
func NewReader(dec *pktline.Decoder) *Reader {
	return &Reader{dec: dec}
}

// Read consumes the advertisement phase and returns its result.
func (r *Reader) Read() (*Result, error) {
	pkt, err := r.dec.Read()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrNoRemoteRepository
		}
		return nil, err
	}
	if pkt.IsFlush() {
		return nil, ErrNoRemoteRepository
	}

	line := pkt.Text()
	if err := checkRemoteError(line); err != nil {
		return nil, err
	}

	switch line {
	case "version 1":
		pkt, err = r.dec.Read()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, ErrNoRemoteRepository
			}
			return nil, err
		}
		if pkt.IsFlush() {
			return nil, ErrNoRemoteRepository
		}
		line = pkt.Text()
		if err := checkRemoteError(line); err != nil {
			return nil, err
		}
		return r.readV0(line)
	case "version 2":
		return r.readV2()
	default:
		return r.readV0(line)
	}
}

func checkRemoteError(line string) error {
	if strings.HasPrefix(line, errPrefix) {
		return &RemoteRepositoryError{Message: strings.TrimPrefix(line, errPrefix)}
	}
	return nil
}

// readV2 consumes capability lines until flush and returns early: refs are
// obtained by a subsequent LsRefsRequester round (§4.4).
func (r *Reader) readV2() (*Result, error) {
	caps := capability.NewSet()
	for {
		pkt, err := r.dec.Read()
		if err != nil {
			return nil, err
		}
		if pkt.IsFlush() {
			break
		}
		caps.Add(pkt.Text())
	}

	return &Result{Version: VersionV2, Capabilities: caps}, nil
}

// readV0 parses the v0 advertisement, starting from its already-read first
// line (firstLine), through the terminating flush.
func (r *Reader) readV0(firstLine string) (*Result, error) {
	caps := capability.NewSet()
	refs := ref.NewMap()
	var pending []ref.PendingSymref

	refPart, capPart, hasCaps := strings.Cut(firstLine, "\x00")
	if hasCaps {
		for _, tok := range strings.Fields(capPart) {
			if target, ok := strings.CutPrefix(tok, "symref="); ok {
				if s, t, ok := strings.Cut(target, ":"); ok {
					pending = append(pending, ref.PendingSymref{Source: s, Target: t})
				}
				continue
			}
			caps.Add(tok)
		}
	}

	if err := processRefLine(refPart, refs, true); err != nil {
		return nil, err
	}

	for {
		pkt, err := r.dec.Read()
		if err != nil {
			return nil, err
		}
		if pkt.IsFlush() {
			break
		}
		if err := checkRemoteError(pkt.Text()); err != nil {
			return nil, err
		}
		if err := processRefLine(pkt.Text(), refs, false); err != nil {
			return nil, err
		}
	}

	ref.ResolveSymrefs(refs, pending)

	return &Result{Version: VersionV0, Capabilities: caps, Refs: refs}, nil
}

// processRefLine handles one "<40-hex> SP <name>" v0 ref line against the
// rules in spec §4.3: capabilities^{} placeholder, .have pseudo-ref, ^{}
// peel suffix, and plain new refs.
func processRefLine(line string, refs *ref.Map, first bool) error {
	idHex, name, ok := strings.Cut(line, " ")
	if !ok {
		return fmt.Errorf("%w: malformed ref line %q", ErrInvalidAdvertisement, line)
	}

	id, err := hash.FromHex(idHex)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAdvertisement, err)
	}

	if first && name == "capabilities^{}" {
		return nil
	}

	if name == ".have" {
		refs.AddHave(id)
		return nil
	}

	if peeledName, isPeel := strings.CutSuffix(name, "^{}"); isPeel {
		prev, ok := refs.Get(peeledName)
		if !ok || prev.Kind == ref.KindPeeledTag {
			return fmt.Errorf("%w: peel of unknown or already-peeled ref %q", ErrInvalidAdvertisement, peeledName)
		}
		refs.Set(ref.PeeledTag(peeledName, prev.ID, id))
		return nil
	}

	if refs.Has(name) {
		return fmt.Errorf("%w: duplicate ref %q", ErrInvalidAdvertisement, name)
	}
	refs.Set(ref.Direct(name, id))
	return nil
}
