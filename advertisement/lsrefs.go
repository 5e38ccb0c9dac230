package advertisement

import (
	"fmt"
	"strings"

	"github.com/gitwire-go/gitwire/capability"
	"github.com/gitwire-go/gitwire/pktline"
	"github.com/gitwire-go/gitwire/protocol/hash"
	"github.com/gitwire-go/gitwire/ref"
)

// LsRefsRequester drives the protocol v2 "ls-refs" command: build and send
// the request, then parse the response into a ref.Map.
type LsRefsRequester struct {
	enc *pktline.Encoder
	dec *pktline.Decoder
}

// NewLsRefsRequester returns a requester writing to enc and reading from dec.
func NewLsRefsRequester(enc *pktline.Encoder, dec *pktline.Decoder) *LsRefsRequester {
	return &LsRefsRequester{enc: enc, dec: dec}
}

// Request sends the ls-refs command. userAgent is sent as agent=<ua> only if
// caps advertised "agent" (see spec.md open question: never sent unprompted).
// prefixes is the caller-computed ref-prefix set (see refspec.RefSpecSet.Prefixes).
func (r *LsRefsRequester) Request(caps *capability.Set, userAgent string, prefixes []string) error {
	if err := r.enc.WriteString("command=ls-refs\n"); err != nil {
		return err
	}
	if caps.Has("agent") && userAgent != "" {
		if err := r.enc.WriteString(fmt.Sprintf("agent=%s\n", userAgent)); err != nil {
			return err
		}
	}
	if err := r.enc.Delim(); err != nil {
		return err
	}
	if err := r.enc.WriteString("peel\n"); err != nil {
		return err
	}
	if err := r.enc.WriteString("symrefs\n"); err != nil {
		return err
	}
	for _, p := range prefixes {
		if err := r.enc.WriteString(fmt.Sprintf("ref-prefix %s\n", p)); err != nil {
			return err
		}
	}
	return r.enc.Flush()
}

// Response reads the ls-refs reply and returns the resolved ref map.
func (r *LsRefsRequester) Response() (*ref.Map, error) {
	refs := ref.NewMap()
	var pending []ref.PendingSymref

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
		if err := processLsRefsLine(pkt.Text(), refs, &pending); err != nil {
			return nil, err
		}
	}

	ref.ResolveSymrefs(refs, pending)

	return refs, nil
}

// processLsRefsLine handles one "<40-hex> SP <name>[ SP <attr>]*" line.
func processLsRefsLine(line string, refs *ref.Map, pending *[]ref.PendingSymref) error {
	fields := strings.Split(line, " ")
	if len(fields) < 2 {
		return fmt.Errorf("%w: malformed ls-refs line %q", ErrInvalidAdvertisement, line)
	}

	id, err := hash.FromHex(fields[0])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAdvertisement, err)
	}
	name := fields[1]

	var symrefTarget string
	var peeled hash.Hash
	var sawSymrefTarget, sawPeeled bool

	for _, attr := range fields[2:] {
		switch {
		case strings.HasPrefix(attr, "symref-target:"):
			if sawSymrefTarget {
				return fmt.Errorf("%w: duplicate symref-target attribute on %q", ErrInvalidAdvertisement, name)
			}
			sawSymrefTarget = true
			symrefTarget = strings.TrimPrefix(attr, "symref-target:")
		case strings.HasPrefix(attr, "peeled:"):
			if sawPeeled {
				return fmt.Errorf("%w: duplicate peeled attribute on %q", ErrInvalidAdvertisement, name)
			}
			sawPeeled = true
			peeled, err = hash.FromHex(strings.TrimPrefix(attr, "peeled:"))
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidAdvertisement, err)
			}
		}
	}

	if name == ".have" {
		refs.AddHave(id)
		return nil
	}

	if refs.Has(name) {
		return fmt.Errorf("%w: duplicate ref %q", ErrInvalidAdvertisement, name)
	}

	switch {
	case sawSymrefTarget:
		refs.Set(ref.Direct(name, id))
		*pending = append(*pending, ref.PendingSymref{Source: name, Target: symrefTarget})
	case sawPeeled:
		refs.Set(ref.PeeledTag(name, id, peeled))
	default:
		refs.Set(ref.Direct(name, id))
	}

	return nil
}
