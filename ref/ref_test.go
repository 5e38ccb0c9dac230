package ref

import (
	"testing"

	"github.com/gitwire-go/gitwire/protocol/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func h(hexSuffix byte) hash.Hash {
	raw := make([]byte, hash.Size)
	raw[hash.Size-1] = hexSuffix
	return hash.Hash(raw)
}

func TestMapOrderPreserved(t *testing.T) {
	m := NewMap()
	m.Set(Direct("refs/heads/a", h(1)))
	m.Set(Direct("refs/heads/b", h(2)))
	m.Set(Direct("refs/heads/a", h(3))) // replace, keeps position

	all := m.All()
	require.Len(t, all, 2)
	assert.Equal(t, "refs/heads/a", all[0].Name)
	assert.True(t, all[0].ID.Is(h(3)))
	assert.Equal(t, "refs/heads/b", all[1].Name)
}

func TestAdditionalHaves(t *testing.T) {
	m := NewMap()
	m.AddHave(h(9))
	assert.Equal(t, []hash.Hash{h(9)}, m.AdditionalHaves())
}

func TestResolveDirectChain(t *testing.T) {
	m := NewMap()
	m.Set(Direct("refs/heads/main", h(1)))
	ResolveSymrefs(m, []PendingSymref{{Source: "HEAD", Target: "refs/heads/main"}})

	r, ok := m.Resolve("HEAD")
	require.True(t, ok)
	assert.Equal(t, KindDirect, r.Kind)
	assert.True(t, r.ID.Is(h(1)))

	head, ok := m.Get("HEAD")
	require.True(t, ok)
	assert.Equal(t, KindSymbolic, head.Kind)
	assert.Equal(t, "refs/heads/main", head.Target)
}

func TestResolveTransitiveChain(t *testing.T) {
	m := NewMap()
	m.Set(Direct("refs/heads/main", h(1)))
	ResolveSymrefs(m, []PendingSymref{
		{Source: "refs/remotes/origin/HEAD", Target: "HEAD"},
		{Source: "HEAD", Target: "refs/heads/main"},
	})

	r, ok := m.Resolve("refs/remotes/origin/HEAD")
	require.True(t, ok)
	assert.True(t, r.ID.Is(h(1)))
}

func TestResolveCycleLeavesUnresolved(t *testing.T) {
	m := NewMap()
	ResolveSymrefs(m, []PendingSymref{
		{Source: "A", Target: "B"},
		{Source: "B", Target: "A"},
	})
	assert.False(t, m.Has("A"))
	assert.False(t, m.Has("B"))
}

func TestHeadFixupSynthesizesTarget(t *testing.T) {
	m := NewMap()
	m.Set(Direct("HEAD", h(5)))
	ResolveSymrefs(m, []PendingSymref{{Source: "HEAD", Target: "refs/heads/main"}})

	target, ok := m.Get("refs/heads/main")
	require.True(t, ok)
	assert.Equal(t, KindDirect, target.Kind)
	assert.True(t, target.ID.Is(h(5)))

	head, ok := m.Get("HEAD")
	require.True(t, ok)
	assert.Equal(t, KindSymbolic, head.Kind)
	assert.Equal(t, "refs/heads/main", head.Target)
}

func TestPeeledTag(t *testing.T) {
	m := NewMap()
	m.Set(PeeledTag("refs/tags/v1", h(1), h(2)))
	r, ok := m.Get("refs/tags/v1")
	require.True(t, ok)
	assert.Equal(t, KindPeeledTag, r.Kind)
	assert.True(t, r.ID.Is(h(1)))
	assert.True(t, r.Peeled.Is(h(2)))
}
