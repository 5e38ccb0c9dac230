package ref

import "github.com/gitwire-go/gitwire/protocol/hash"

// PendingSymref is a source→target symref entry awaiting resolution against
// a Map of already-collected peeled/direct refs.
type PendingSymref struct {
	Source string
	Target string
}

// ResolveSymrefs resolves each pending entry against m and inserts a
// KindSymbolic ref for every source whose target (transitively) reaches an
// entry already in m. Entries whose target is itself another pending symref
// are deferred until that target resolves; entries that never resolve (dead
// target, or a cycle among the pending set) are left out of m entirely,
// matching the "cycles are broken by treating unresolvable entries as
// absent" invariant.
//
// Special fixup: if HEAD is among the pending entries but its target never
// resolves to an existing map entry, while m already has a peeled entry
// named "HEAD" (an object-form HEAD line, as v0 sometimes advertises), a
// peeled ref is synthesized at the pending target pointing at that object,
// and HEAD itself becomes symbolic to it.
func ResolveSymrefs(m *Map, pending []PendingSymref) {
	remaining := make([]PendingSymref, len(pending))
	copy(remaining, pending)

	for {
		progressed := false
		var next []PendingSymref

		for _, p := range remaining {
			// A source whose target resolves overrides any existing entry
			// at source (e.g. an object-form "HEAD" line is replaced by the
			// symbolic form once its target ref is known).
			if m.Has(p.Target) {
				m.Set(Symbolic(p.Source, p.Target))
				progressed = true
				continue
			}
			next = append(next, p)
		}

		remaining = next
		if !progressed || len(remaining) == 0 {
			break
		}
	}

	headFixup(m, remaining)
}

// headFixup implements the special-case in spec §4.3: an unresolved
// "HEAD" pending entry, combined with an existing object-form "HEAD" ref,
// synthesizes a peeled ref at the target name and repoints HEAD at it.
func headFixup(m *Map, remaining []PendingSymref) {
	for _, p := range remaining {
		if p.Source != "HEAD" {
			continue
		}
		head, ok := m.Get("HEAD")
		if !ok || head.Kind == KindSymbolic {
			continue
		}

		var id hash.Hash
		switch head.Kind {
		case KindDirect:
			id = head.ID
		case KindPeeledTag:
			id = head.ID
		}

		m.Set(Direct(p.Target, id))
		m.Set(Symbolic("HEAD", p.Target))
		return
	}
}
