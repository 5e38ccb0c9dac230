package fetchplan

import (
	"context"
	"fmt"
	"strings"

	"github.com/gitwire-go/gitwire/protocol/hash"
	"github.com/gitwire-go/gitwire/ref"
	"github.com/gitwire-go/gitwire/refspec"
)

// Planner computes and applies one fetch plan. Its fields are the external
// collaborators named in spec §6; a caller assembles one Planner per fetch.
type Planner struct {
	Negotiator   PackNegotiator
	Connectivity ConnectivityChecker
	LocalRefs    LocalRefStore
	FetchHead    FetchHeadWriter

	// Reopen re-runs the advertisement phase against a fresh prefix set for
	// the auto-follow tag second round (spec §4.5 step 5). nil disables pass
	// 2 entirely (equivalent to the peer never offering new tags).
	Reopen func(ctx context.Context, prefixes []string) (*ref.Map, error)

	SourceURI string
	Prune     bool
	DryRun    bool
}

// Input is everything Plan needs besides the Planner's own collaborators.
type Input struct {
	RefSpecs      refspec.RefSpecSet
	Advertised    *ref.Map
	TagMode       TagMode
	InitialBranch string
}

// Plan runs the full algorithm of spec §4.5 and returns the result. On
// success, tracking-ref updates have already been applied to LocalRefs and
// FETCH_HEAD has already been written; Plan is not a dry computation.
func (p *Planner) Plan(ctx context.Context, in Input) (*Plan, error) {
	if err := checkInitialBranch(in.InitialBranch, in.Advertised); err != nil {
		return nil, err
	}

	plan := &Plan{AskFor: make(map[string]ref.Ref)}

	if err := p.expandPositiveSpecs(in, plan); err != nil {
		return nil, err
	}

	p.tagPassOne(in, plan)

	if err := p.initialFetch(ctx, plan); err != nil {
		return nil, err
	}

	if in.TagMode == TagModeAutoFollow && len(plan.tagCandidates) > 0 {
		if err := p.tagPassTwo(ctx, in, plan); err != nil {
			return nil, err
		}
	}

	if err := p.apply(ctx, in, plan); err != nil {
		return nil, err
	}

	if len(plan.FetchHead) > 0 && p.FetchHead != nil {
		if err := p.FetchHead.Write(ctx, plan.FetchHead); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

// checkInitialBranch implements step 1: a caller-required initial branch
// must be advertised under one of its three conventional forms, unless the
// advertisement is empty (a brand-new repository).
func checkInitialBranch(initialBranch string, advertised *ref.Map) error {
	if initialBranch == "" || advertised.Len() == 0 {
		return nil
	}
	for _, name := range []string{initialBranch, "refs/heads/" + initialBranch, "refs/tags/" + initialBranch} {
		if advertised.Has(name) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrRemoteBranchNotFound, initialBranch)
}

// want records id/srcRef into the ask-for set, stages a tracking-ref update
// if dst is non-empty and the local ref does not already hold id, and always
// appends a FETCH_HEAD record (not-for-merge exactly when dst is non-empty).
func (p *Planner) want(plan *Plan, id hash.Hash, srcRef ref.Ref, dst string, force bool) {
	plan.AskFor[id.String()] = srcRef

	if dst != "" {
		var oldID hash.Hash
		if p.LocalRefs != nil {
			oldID, _ = p.LocalRefs.Get(dst)
		}
		if !oldID.Is(id) {
			plan.Tracking = append(plan.Tracking, TrackingRefUpdate{
				RemoteName: srcRef.Name,
				LocalName:  dst,
				OldID:      oldID,
				NewID:      id,
				Force:      force,
			})
		}
	}

	plan.FetchHead = append(plan.FetchHead, FetchHeadRecord{
		ID:          id,
		SourceRef:   srcRef.Name,
		SourceURI:   p.SourceURI,
		NotForMerge: dst != "",
	})
}

// expandPositiveSpecs implements step 2.
func (p *Planner) expandPositiveSpecs(in Input, plan *Plan) error {
	for _, spec := range in.RefSpecs.Positive() {
		switch {
		case spec.Wildcard():
			for _, r := range in.Advertised.All() {
				if !spec.Match(r.Name) {
					continue
				}
				if in.RefSpecs.Suppressed(r.Name) {
					continue
				}
				resolved, ok := in.Advertised.Resolve(r.Name)
				if !ok {
					continue
				}
				p.want(plan, resolved.ObjectID(), r, spec.Expand(r.Name), spec.Force())
			}

		case spec.ExactObjectID():
			id, err := hash.FromHex(spec.Src())
			if err != nil {
				return err
			}
			p.want(plan, id, ref.Direct(spec.Src(), id), spec.Dst(), spec.Force())

		default:
			r, ok := in.Advertised.Get(spec.Src())
			if !ok {
				return fmt.Errorf("%w: %q", ErrRemoteDoesNotHaveSpec, spec.Src())
			}
			resolved, ok := in.Advertised.Resolve(spec.Src())
			if !ok {
				return fmt.Errorf("%w: %q", ErrRemoteDoesNotHaveSpec, spec.Src())
			}
			p.want(plan, resolved.ObjectID(), r, spec.Dst(), spec.Force())
		}
	}
	return nil
}

// tagPassOne implements step 3.
func (p *Planner) tagPassOne(in Input, plan *Plan) {
	if in.TagMode == TagModeNoTags {
		return
	}

	for _, r := range in.Advertised.All() {
		if r.Kind != ref.KindPeeledTag || !strings.HasPrefix(r.Name, "refs/tags/") {
			continue
		}
		if p.LocalRefs != nil {
			if localID, known := p.LocalRefs.Get(r.Name); known && localID.Is(r.ID) {
				continue
			}
		}

		if in.TagMode == TagModeFetchTags {
			p.want(plan, r.ID, r, "", false)
			continue
		}

		// AutoFollow: want immediately if the peeled target is already
		// local or already in this fetch's ask-for set; otherwise defer as
		// a pass-2 candidate.
		if (p.LocalRefs != nil && p.LocalRefs.Has(r.Peeled)) || plan.AskFor[r.Peeled.String()].Name != "" {
			p.want(plan, r.ID, r, "", true)
			continue
		}
		plan.tagCandidates = append(plan.tagCandidates, r)
	}
}

// initialFetch implements step 4.
func (p *Planner) initialFetch(ctx context.Context, plan *Plan) error {
	if len(plan.AskFor) == 0 {
		return nil
	}

	wants := make([]hash.Hash, 0, len(plan.AskFor))
	for _, r := range plan.AskFor {
		wants = append(wants, r.ObjectID())
	}

	if p.Connectivity != nil {
		reachable, err := p.Connectivity.Reachable(ctx, wants)
		if err != nil {
			return &ErrUnableToCheckConnectivity{Err: err}
		}
		if reachable {
			plan.Asked = false
			return nil
		}
	}

	plan.Asked = true
	if p.Negotiator == nil {
		return nil
	}
	_, err := p.Negotiator.Negotiate(ctx, wants, nil)
	return err
}

// tagPassTwo implements step 5: reopen against prefixes derived from the
// current ask-for ref names, intersect by object id, and want any candidate
// tag whose peeled target is now local.
func (p *Planner) tagPassTwo(ctx context.Context, in Input, plan *Plan) error {
	if p.Reopen == nil {
		return nil
	}

	prefixes := make([]string, 0, len(plan.AskFor))
	for _, r := range plan.AskFor {
		prefixes = append(prefixes, r.Name)
	}

	fresh, err := p.Reopen(ctx, prefixes)
	if err != nil {
		return err
	}

	// Rebuild ask-for by intersecting old wants with the fresh advertisement
	// on object id; discard FETCH_HEAD/tracking entries no longer offered.
	keptAskFor := make(map[string]ref.Ref, len(plan.AskFor))
	for idHex, r := range plan.AskFor {
		if fr, ok := fresh.Get(r.Name); ok && fr.ObjectID().String() == idHex {
			keptAskFor[idHex] = r
		}
	}
	plan.AskFor = keptAskFor

	plan.FetchHead = filterFetchHead(plan.FetchHead, keptAskFor)
	plan.Tracking = filterTracking(plan.Tracking, keptAskFor)

	var wants []hash.Hash
	for _, candidate := range plan.tagCandidates {
		if p.LocalRefs != nil && p.LocalRefs.Has(candidate.Peeled) {
			p.want(plan, candidate.ID, candidate, "", true)
			wants = append(wants, candidate.ID)
		}
	}

	if len(wants) > 0 && p.Negotiator != nil {
		if _, err := p.Negotiator.Negotiate(ctx, wants, nil); err != nil {
			return err
		}
	}

	return nil
}

func filterFetchHead(records []FetchHeadRecord, kept map[string]ref.Ref) []FetchHeadRecord {
	out := records[:0]
	for _, rec := range records {
		if _, ok := kept[rec.ID.String()]; ok {
			out = append(out, rec)
		}
	}
	return out
}

func filterTracking(updates []TrackingRefUpdate, kept map[string]ref.Ref) []TrackingRefUpdate {
	out := updates[:0]
	for _, u := range updates {
		if _, ok := kept[u.NewID.String()]; ok {
			out = append(out, u)
		}
	}
	return out
}

// apply implements step 6: build the batched command list (tracking updates
// plus prune deletions), classify each by fast-forward-ness, and execute.
func (p *Planner) apply(ctx context.Context, in Input, plan *Plan) error {
	cmds := make([]ReceiveCommand, 0, len(plan.Tracking))
	for _, u := range plan.Tracking {
		cmds = append(cmds, ReceiveCommand{RefName: u.LocalName, Old: u.OldID, New: u.NewID, Force: u.Force})
	}

	if p.Prune && p.LocalRefs != nil {
		cmds = append(cmds, p.pruneCommands(in)...)
	}

	if len(cmds) == 0 {
		return nil
	}

	for i := range cmds {
		if p.Connectivity == nil || cmds[i].New.IsZero() || cmds[i].Old.IsZero() {
			continue
		}
		isAncestor, err := p.Connectivity.IsAncestor(ctx, cmds[i].Old, cmds[i].New)
		if err != nil {
			return err
		}
		if !isAncestor && !cmds[i].Force {
			return fmt.Errorf("fetchplan: rejected non-fast-forward update to %q (use force)", cmds[i].RefName)
		}
	}

	if p.LocalRefs == nil {
		return nil
	}
	_, err := p.LocalRefs.ApplyBatch(ctx, cmds, p.DryRun)
	return err
}

// pruneCommands implements step 6's prune clause: a local ref in the
// tracking namespace whose expanded source is no longer advertised is
// deleted.
func (p *Planner) pruneCommands(in Input) []ReceiveCommand {
	var cmds []ReceiveCommand
	for _, name := range p.LocalRefs.Names() {
		if !matchesAnyDestination(in.RefSpecs, name) {
			continue
		}
		if stillAdvertised(in.RefSpecs, in.Advertised, name) {
			continue
		}
		oldID, _ := p.LocalRefs.Get(name)
		cmds = append(cmds, ReceiveCommand{RefName: name, Old: oldID, New: hash.Zero})
	}
	return cmds
}

func matchesAnyDestination(specs refspec.RefSpecSet, localName string) bool {
	for _, s := range specs.Positive() {
		if s.Dst() == localName {
			return true
		}
		if s.Wildcard() && strings.HasPrefix(localName, strings.TrimSuffix(s.Dst(), "*")) {
			return true
		}
	}
	return false
}

func stillAdvertised(specs refspec.RefSpecSet, advertised *ref.Map, localName string) bool {
	for _, s := range specs.Positive() {
		if !s.Wildcard() {
			if s.Dst() == localName {
				return advertised.Has(s.Src())
			}
			continue
		}
		prefix := strings.TrimSuffix(s.Dst(), "*")
		if strings.HasPrefix(localName, prefix) {
			suffix := strings.TrimPrefix(localName, prefix)
			return advertised.Has(strings.TrimSuffix(s.Src(), "*") + suffix)
		}
	}
	return false
}
