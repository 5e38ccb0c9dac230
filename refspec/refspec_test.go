package refspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWildcard(t *testing.T) {
	rs, err := Parse("+refs/heads/*:refs/remotes/origin/*")
	require.NoError(t, err)
	assert.True(t, rs.Force())
	assert.True(t, rs.Wildcard())
	assert.False(t, rs.Negative())
	assert.True(t, rs.Match("refs/heads/main"))
	assert.False(t, rs.Match("refs/tags/v1"))
	assert.Equal(t, "refs/remotes/origin/main", rs.Expand("refs/heads/main"))
}

func TestParseExactNonWildcard(t *testing.T) {
	rs, err := Parse("refs/heads/main:refs/remotes/origin/main")
	require.NoError(t, err)
	assert.False(t, rs.Wildcard())
	assert.True(t, rs.Match("refs/heads/main"))
	assert.False(t, rs.Match("refs/heads/other"))
	assert.Equal(t, "refs/remotes/origin/main", rs.Expand("refs/heads/main"))
}

func TestParseNegative(t *testing.T) {
	rs, err := Parse("^refs/heads/wip/*")
	require.NoError(t, err)
	assert.True(t, rs.Negative())
	assert.Equal(t, "", rs.Dst())
	assert.True(t, rs.Match("refs/heads/wip/scratch"))
}

func TestParseExactObjectID(t *testing.T) {
	rs, err := Parse("0123456789abcdef0123456789abcdef01234567:refs/heads/pinned")
	require.NoError(t, err)
	assert.True(t, rs.ExactObjectID())
	assert.False(t, rs.Wildcard())
}

func TestParseSourceOnly(t *testing.T) {
	rs, err := Parse("refs/heads/main")
	require.NoError(t, err)
	assert.Equal(t, "", rs.Dst())
	assert.True(t, rs.Match("refs/heads/main"))
}

func TestParseMalformed(t *testing.T) {
	cases := []string{
		"",
		"^",
		":refs/heads/main",
		"refs/heads/*:refs/remotes/origin/main", // wildcard mismatch
		"refs/heads/**:refs/remotes/origin/*",
		"refs/heads/main:not-a-refname",       // dst missing refs/ prefix
		"refs/heads/main:refs/heads/bad..ref", // dst fails git-check-ref-format
		"refs/heads/main:refs/nocategory",     // dst has no category/location split
	}
	for _, c := range cases {
		_, err := Parse(c)
		assert.Error(t, err, "expected parse error for %q", c)
	}
}

func TestSetSuppressedByNegative(t *testing.T) {
	set, err := NewSet([]string{
		"+refs/heads/*:refs/remotes/origin/*",
		"^refs/heads/wip/*",
	})
	require.NoError(t, err)

	_, ok := set.MatchPositive("refs/heads/wip/scratch")
	assert.False(t, ok, "wip branches should be suppressed by the negative spec")

	spec, ok := set.MatchPositive("refs/heads/main")
	assert.True(t, ok)
	assert.Equal(t, "refs/remotes/origin/main", spec.Expand("refs/heads/main"))
}

func TestSetPrefixes(t *testing.T) {
	set, err := NewSet([]string{
		"+refs/heads/*:refs/remotes/origin/*",
		"main:refs/remotes/origin/main-alias",
	})
	require.NoError(t, err)

	prefixes := set.Prefixes("HEAD")
	assert.Contains(t, prefixes, "refs/heads/")
	assert.Contains(t, prefixes, "main")
	assert.Contains(t, prefixes, "refs/main")
	assert.Contains(t, prefixes, "refs/heads/main")
	assert.Contains(t, prefixes, "refs/tags/main")
	assert.Contains(t, prefixes, "HEAD")
}

func TestSetExactObjectIDSkipsPrefixes(t *testing.T) {
	set, err := NewSet([]string{"0123456789abcdef0123456789abcdef01234567:refs/heads/pinned"})
	require.NoError(t, err)
	assert.Empty(t, set.Prefixes())
}
