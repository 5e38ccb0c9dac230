package refspec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRefSpec is returned when a refspec string cannot be parsed.
var ErrMalformedRefSpec = errors.New("refspec: malformed")

// ErrNoMatchingRefSpec is returned when a non-wildcard, non-negative refspec's
// source is not present in the advertised ref set.
type ErrNoMatchingRefSpec struct {
	Src string
}

func (e *ErrNoMatchingRefSpec) Error() string {
	return fmt.Sprintf("refspec: no match for %q in advertisement", e.Src)
}

func (e *ErrNoMatchingRefSpec) Is(target error) bool {
	_, ok := target.(*ErrNoMatchingRefSpec)
	return ok
}

// RefSpec is a source:destination mapping pattern, as described in
// git-fetch's REFSPEC FORMAT. Four shapes parse to it:
//
//	+src:dst   force update, non-wildcard or wildcard
//	src:dst    fast-forward-only update
//	^src       negative spec: suppresses matches of src from later specs
//	src        no destination: fetched without writing a tracking ref
type RefSpec struct {
	raw     string
	force   bool
	negate  bool
	src     string
	dst     string // empty for a negative spec
	srcGlob string // prefix before '*', only set when Wildcard()
}

// Parse parses a single refspec string.
func Parse(raw string) (RefSpec, error) {
	rs := RefSpec{raw: raw}

	s := raw
	if strings.HasPrefix(s, "^") {
		rs.negate = true
		s = s[1:]
		if s == "" {
			return RefSpec{}, fmt.Errorf("%w: %q: empty negative spec", ErrMalformedRefSpec, raw)
		}
		rs.src = s
		if err := rs.validateWildcard(rs.src); err != nil {
			return RefSpec{}, err
		}
		return rs, nil
	}

	if strings.HasPrefix(s, "+") {
		rs.force = true
		s = s[1:]
	}

	idx := strings.Index(s, ":")
	if idx == -1 {
		// A source with no destination is shorthand understood by git-fetch
		// to mean "fetch but don't write a tracking ref"; FetchPlanner treats
		// it as a positive spec with an empty destination.
		rs.src = s
	} else {
		rs.src = s[:idx]
		rs.dst = s[idx+1:]
	}

	if rs.src == "" {
		return RefSpec{}, fmt.Errorf("%w: %q: empty source", ErrMalformedRefSpec, raw)
	}

	if err := rs.validateWildcard(rs.src); err != nil {
		return RefSpec{}, err
	}
	if rs.dst != "" {
		if strings.HasSuffix(rs.dst, "/*") != rs.Wildcard() {
			return RefSpec{}, fmt.Errorf("%w: %q: source and destination wildcard mismatch", ErrMalformedRefSpec, raw)
		}
		if err := rs.validateDst(); err != nil {
			return RefSpec{}, err
		}
	}

	return rs, nil
}

// validateDst checks that rs.dst is (or, for a wildcard spec, expands to) a
// well-formed refname per git-check-ref-format, via ParseRefName. A wildcard
// destination is validated by substituting a placeholder component for its
// trailing "/*", since the pattern itself is not a refname.
func (rs RefSpec) validateDst() error {
	candidate := rs.dst
	if rs.Wildcard() {
		candidate = strings.TrimSuffix(rs.dst, "*") + "x"
	}
	if _, err := ParseRefName(candidate); err != nil {
		return fmt.Errorf("%w: %q: destination %q is not a valid refname: %v", ErrMalformedRefSpec, rs.raw, rs.dst, err)
	}
	return nil
}

func (rs *RefSpec) validateWildcard(pattern string) error {
	if !strings.Contains(pattern, "*") {
		return nil
	}
	if !strings.HasSuffix(pattern, "/*") || strings.Count(pattern, "*") != 1 {
		return fmt.Errorf("%w: %q: wildcard must be a trailing /*", ErrMalformedRefSpec, rs.raw)
	}
	rs.srcGlob = strings.TrimSuffix(pattern, "*")
	return nil
}

// String returns the original, unparsed refspec text.
func (rs RefSpec) String() string { return rs.raw }

// Force reports whether the spec permits a non-fast-forward update.
func (rs RefSpec) Force() bool { return rs.force }

// Negative reports whether rs is a negative spec (no destination; suppresses
// matches of later positive specs instead of requesting anything itself).
func (rs RefSpec) Negative() bool { return rs.negate }

// Wildcard reports whether the source pattern ends in "/*".
func (rs RefSpec) Wildcard() bool { return rs.srcGlob != "" }

// ExactObjectID reports whether the source names a 40-hex object id rather
// than a ref name or pattern.
func (rs RefSpec) ExactObjectID() bool {
	if rs.Wildcard() || len(rs.src) != 40 {
		return false
	}
	for _, c := range rs.src {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

// Src returns the source pattern (with the trailing '*' included, for a
// wildcard spec).
func (rs RefSpec) Src() string { return rs.src }

// Dst returns the destination pattern. Empty for a negative spec, and for a
// positive spec with no explicit destination.
func (rs RefSpec) Dst() string { return rs.dst }

// Match reports whether name matches rs's source pattern.
func (rs RefSpec) Match(name string) bool {
	if rs.Wildcard() {
		return strings.HasPrefix(name, rs.srcGlob)
	}
	return rs.src == name
}

// Expand computes the destination ref name for an advertised ref name that
// Match reports true for. For a wildcard spec, the matched suffix is
// substituted into the destination's own trailing "/*". For a non-wildcard
// spec, Dst is returned unchanged (ignoring name).
func (rs RefSpec) Expand(name string) string {
	if !rs.Wildcard() {
		return rs.dst
	}
	suffix := strings.TrimPrefix(name, rs.srcGlob)
	return strings.TrimSuffix(rs.dst, "*") + suffix
}

// RefSpecSet is a parsed, ordered collection of refspecs supplied by a
// caller, split into their positive and negative halves for matching.
type RefSpecSet struct {
	all      []RefSpec
	positive []RefSpec
	negative []RefSpec
}

// NewSet parses raw into a RefSpecSet, preserving input order within each
// half.
func NewSet(raw []string) (RefSpecSet, error) {
	var set RefSpecSet
	for _, r := range raw {
		rs, err := Parse(r)
		if err != nil {
			return RefSpecSet{}, err
		}
		set.all = append(set.all, rs)
		if rs.Negative() {
			set.negative = append(set.negative, rs)
		} else {
			set.positive = append(set.positive, rs)
		}
	}
	return set, nil
}

// All returns every parsed spec in input order.
func (s RefSpecSet) All() []RefSpec { return s.all }

// Positive returns the non-negative specs, in input order.
func (s RefSpecSet) Positive() []RefSpec { return s.positive }

// Negative returns the negative specs, in input order.
func (s RefSpecSet) Negative() []RefSpec { return s.negative }

// Suppressed reports whether some negative spec matches name, meaning a
// positive match of name should be discarded.
func (s RefSpecSet) Suppressed(name string) bool {
	for _, n := range s.negative {
		if n.Match(name) {
			return true
		}
	}
	return false
}

// MatchPositive reports whether some positive spec matches name and that
// match is not suppressed by a negative spec, returning the matching spec.
func (s RefSpecSet) MatchPositive(name string) (RefSpec, bool) {
	for _, p := range s.positive {
		if p.Match(name) && !s.Suppressed(name) {
			return p, true
		}
	}
	return RefSpec{}, false
}

// Prefixes computes the ls-refs prefix set (spec §4.4): for each non-negative
// spec whose source is not an exact object id, the literal source if it is
// not a wildcard, or the substring before '*' if it is; plus, for a
// non-wildcard source, that source prefixed by each of "refs/",
// "refs/heads/", and "refs/tags/" (to tolerate abbreviated sources like
// "main"). extra is appended verbatim (e.g. "HEAD" for clone).
func (s RefSpecSet) Prefixes(extra ...string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		if _, ok := seen[p]; ok || p == "" {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, p := range s.positive {
		if p.ExactObjectID() {
			continue
		}
		if p.Wildcard() {
			add(p.srcGlob)
			continue
		}
		add(p.src)
		for _, prefix := range []string{"refs/", "refs/heads/", "refs/tags/"} {
			if !strings.HasPrefix(p.src, prefix) {
				add(prefix + p.src)
			}
		}
	}

	for _, e := range extra {
		add(e)
	}

	return out
}
