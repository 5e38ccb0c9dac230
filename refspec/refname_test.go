package refspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRefNameHEAD(t *testing.T) {
	rn, err := ParseRefName("HEAD")
	require.NoError(t, err)
	assert.Equal(t, HEAD, rn)
}

func TestParseRefNameValid(t *testing.T) {
	rn, err := ParseRefName("refs/heads/feature/login")
	require.NoError(t, err)
	assert.Equal(t, "refs/heads/feature/login", rn.FullName)
	assert.Equal(t, "heads", rn.Category)
	assert.Equal(t, "feature/login", rn.Location)
}

func TestParseRefNameRejections(t *testing.T) {
	cases := []string{
		"main",                  // no refs/ prefix
		"refs/heads",            // no category separator
		"refs/heads/..",         // consecutive dots
		"refs/heads//main",      // consecutive slashes
		"refs/heads/main@{1}",   // @{ sequence
		"refs/heads/main.",      // trailing dot
		"refs/heads/.main",      // component starts with dot
		"refs/heads/main.lock",  // trailing .lock
		"refs/heads/ma in",      // space
		"refs/heads/ma\\in",     // backslash
		"refs/heads/@",          // bare @ component
	}
	for _, c := range cases {
		_, err := ParseRefName(c)
		assert.Error(t, err, "expected rejection for %q", c)
	}
}
