package fetchplan

import (
	"context"

	"github.com/gitwire-go/gitwire/protocol/hash"
)

// PackNegotiator drives the external pack transfer: given the set of wanted
// object ids and the haves the planner already knows about, it exchanges
// want/have lines with the peer, drains the resulting pack into the local
// object database, and reports whether the transfer implicitly delivered
// tags (a server capability effect noted in spec §4.5 step 4).
//
//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o ../internal/fakes/pack_negotiator.go . PackNegotiator
type PackNegotiator interface {
	Negotiate(ctx context.Context, wants []hash.Hash, haves []hash.Hash) (tagsIncluded bool, err error)
}

// ConnectivityChecker answers "is every wanted object already reachable from
// some local ref?" (spec §4.7). Implementations may always return false,
// which degrades to "always fetch".
//
//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o ../internal/fakes/connectivity_checker.go . ConnectivityChecker
type ConnectivityChecker interface {
	Reachable(ctx context.Context, wants []hash.Hash) (bool, error)
	// IsAncestor reports whether old is an ancestor of (or equal to) new,
	// used to classify a tracking-ref update as fast-forward (spec §4.5
	// step 6). Both use the same underlying commit graph as Reachable.
	IsAncestor(ctx context.Context, old, new hash.Hash) (bool, error)
}

// LocalRefStore is the local ref database: read access for planning, and the
// single batched update FetchPlanner issues once planning is complete (spec
// §4.5 step 6, §5 shared-resource policy).
//
//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o ../internal/fakes/local_ref_store.go . LocalRefStore
type LocalRefStore interface {
	// Get returns the local object id for name, or hash.Zero if absent.
	Get(name string) (hash.Hash, bool)
	// Has reports whether the local repository already holds obj (used by
	// tag pass 1/2 candidate promotion).
	Has(obj hash.Hash) bool
	// Names returns every local ref name; when pruning, the planner keeps
	// only those matching a positive refspec's destination.
	Names() []string
	// ApplyBatch executes cmds atomically (or, on dryRun, applies nothing and
	// marks every command OK as "not attempted") and returns one
	// CommandResult per input command, in the same order.
	ApplyBatch(ctx context.Context, cmds []ReceiveCommand, dryRun bool) ([]CommandResult, error)
}

// FetchHeadWriter appends the fetch's FETCH_HEAD records under an exclusive
// lock (spec §4.5 step 7, §5: "FETCH_HEAD.lock is created exclusively,
// written, and atomically renamed on commit").
//
//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o ../internal/fakes/fetch_head_writer.go . FetchHeadWriter
type FetchHeadWriter interface {
	Write(ctx context.Context, records []FetchHeadRecord) error
}

// ReceiveCommand is one tracking-ref update submitted to LocalRefStore.ApplyBatch.
type ReceiveCommand struct {
	RefName string
	Old     hash.Hash
	New     hash.Hash // Zero means "delete"
	Force   bool
}

// CommandType classifies how a ReceiveCommand was resolved against the
// commit graph (spec §4.5 step 6).
type CommandType int

const (
	// CommandUpdate is a fast-forward (or forced) update.
	CommandUpdate CommandType = iota
	// CommandNonFastForward is an update whose old id is not an ancestor of
	// the new id; rejected unless the originating spec was force.
	CommandNonFastForward
	// CommandDelete removes a local ref no longer offered by the advertisement.
	CommandDelete
)

// CommandResult is the outcome of one applied (or rejected) ReceiveCommand.
type CommandResult struct {
	Command ReceiveCommand
	Type    CommandType
	OK      bool
	Err     error
}
