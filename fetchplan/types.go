// Package fetchplan computes what a fetch should ask for and how it should
// update the local repository, given the user's refspecs, the peer's
// advertisement, and the local ref database. It does not speak the wire
// protocol itself: object transfer, connectivity checks, and ref writes are
// delegated to the external collaborators in interfaces.go.
package fetchplan

import (
	"errors"
	"fmt"

	"github.com/gitwire-go/gitwire/protocol/hash"
	"github.com/gitwire-go/gitwire/ref"
)

// TagMode selects how the planner treats tags, per spec §4.5 step 3.
type TagMode int

const (
	// TagModeAutoFollow wants an advertised tag only once its peeled target
	// is already local or already wanted by this fetch (the default).
	TagModeAutoFollow TagMode = iota
	// TagModeNoTags never wants a tag implicitly.
	TagModeNoTags
	// TagModeFetchTags wants every advertised tag that differs from (or is
	// missing from) its local counterpart, unconditionally.
	TagModeFetchTags
)

// FetchHeadRecord is one line to append to FETCH_HEAD.
type FetchHeadRecord struct {
	ID          hash.Hash
	SourceRef   string
	SourceURI   string
	NotForMerge bool
}

// TrackingRefUpdate is one local tracking-ref write the plan produced.
type TrackingRefUpdate struct {
	RemoteName string
	LocalName  string
	OldID      hash.Hash
	NewID      hash.Hash
	Force      bool
}

// ErrRemoteDoesNotHaveSpec is returned when an explicit (non-wildcard)
// refspec's source is absent from the advertisement.
var ErrRemoteDoesNotHaveSpec = errors.New("fetchplan: remote does not have refspec source")

// ErrRemoteBranchNotFound is returned when a caller-required initial branch
// is absent from a non-empty advertisement.
var ErrRemoteBranchNotFound = errors.New("fetchplan: remote branch not found")

// ErrUnableToCheckConnectivity wraps a connectivity-check I/O failure.
type ErrUnableToCheckConnectivity struct {
	Err error
}

func (e *ErrUnableToCheckConnectivity) Error() string {
	return fmt.Sprintf("fetchplan: unable to check connectivity: %v", e.Err)
}

func (e *ErrUnableToCheckConnectivity) Unwrap() error { return e.Err }

// Plan is the computed outcome of FetchPlanner.Plan: everything the caller
// needs to drive the transfer and apply local updates.
type Plan struct {
	AskFor    map[string]ref.Ref // object id hex -> source ref
	Tracking  []TrackingRefUpdate
	FetchHead []FetchHeadRecord
	Asked     bool

	// tagCandidates carries pass-1 auto-follow candidates into pass 2;
	// unexported because it is planner-internal reopen state, not part of
	// the public result a caller acts on.
	tagCandidates []ref.Ref
}
