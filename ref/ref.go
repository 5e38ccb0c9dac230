// Package ref models advertised Git references as a tagged union, and the
// ordered map of them a peer hands over during advertisement or ls-refs.
package ref

import "github.com/gitwire-go/gitwire/protocol/hash"

// Kind distinguishes the three shapes a Ref can take.
type Kind int

const (
	// KindDirect is an ordinary ref pointing straight at an object id.
	KindDirect Kind = iota
	// KindPeeledTag is a tag ref: ID is the tag object, Peeled is what the
	// tag ultimately points at.
	KindPeeledTag
	// KindSymbolic is a ref whose value is another ref's name.
	KindSymbolic
)

// Ref is one advertised reference.
type Ref struct {
	Name   string
	Kind   Kind
	ID     hash.Hash // object id for KindDirect and KindPeeledTag (the tag object itself)
	Peeled hash.Hash // target object id for KindPeeledTag
	Target string    // ref name for KindSymbolic
}

// Direct constructs a KindDirect ref.
func Direct(name string, id hash.Hash) Ref {
	return Ref{Name: name, Kind: KindDirect, ID: id}
}

// PeeledTag constructs a KindPeeledTag ref.
func PeeledTag(name string, id, peeled hash.Hash) Ref {
	return Ref{Name: name, Kind: KindPeeledTag, ID: id, Peeled: peeled}
}

// Symbolic constructs a KindSymbolic ref pointing at target.
func Symbolic(name, target string) Ref {
	return Ref{Name: name, Kind: KindSymbolic, Target: target}
}

// ObjectID returns the effective object id of r: ID for direct and peeled-tag
// refs. Symbolic refs have no object id of their own; callers resolve them
// through a Map first.
func (r Ref) ObjectID() hash.Hash {
	return r.ID
}

// Map is an ordered name→Ref mapping, preserving advertisement order, plus
// the side set of object ids advertised under the ".have" pseudo-name.
type Map struct {
	order           []string
	byName          map[string]Ref
	additionalHaves []hash.Hash
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{byName: make(map[string]Ref)}
}

// Set inserts or replaces the ref named r.Name, preserving its original
// position if it already existed.
func (m *Map) Set(r Ref) {
	if _, exists := m.byName[r.Name]; !exists {
		m.order = append(m.order, r.Name)
	}
	m.byName[r.Name] = r
}

// Get returns the ref named name, if any.
func (m *Map) Get(name string) (Ref, bool) {
	r, ok := m.byName[name]
	return r, ok
}

// Has reports whether name is present.
func (m *Map) Has(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// Delete removes name from the map, if present.
func (m *Map) Delete(name string) {
	if _, ok := m.byName[name]; !ok {
		return
	}
	delete(m.byName, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of refs in the map.
func (m *Map) Len() int { return len(m.order) }

// All returns every ref in advertisement order.
func (m *Map) All() []Ref {
	out := make([]Ref, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.byName[name])
	}
	return out
}

// AddHave records an object id advertised under the ".have" pseudo-name:
// usable as a have line, never fetchable by ref name.
func (m *Map) AddHave(id hash.Hash) {
	m.additionalHaves = append(m.additionalHaves, id)
}

// AdditionalHaves returns the object ids collected via AddHave.
func (m *Map) AdditionalHaves() []hash.Hash {
	return m.additionalHaves
}

// Resolve follows a chain of symbolic refs starting at name until it reaches
// a peeled variant (KindDirect or KindPeeledTag), returning that terminal
// ref. It reports false if name is absent or the chain cycles or dead-ends
// without reaching a peeled ref.
func (m *Map) Resolve(name string) (Ref, bool) {
	seen := make(map[string]struct{})
	cur := name
	for {
		if _, looped := seen[cur]; looped {
			return Ref{}, false
		}
		seen[cur] = struct{}{}

		r, ok := m.byName[cur]
		if !ok {
			return Ref{}, false
		}
		if r.Kind != KindSymbolic {
			return r, true
		}
		cur = r.Target
	}
}
