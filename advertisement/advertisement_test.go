package advertisement

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gitwire-go/gitwire/pktline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroHash40() string { return strings.Repeat("0", 40) }

func pkt(payload string) string {
	if payload == "" {
		return "0000"
	}
	n := len(payload) + 4
	return hexLen(n) + payload
}

func hexLen(n int) string {
	const hexdigits = "0123456789abcdef"
	b := make([]byte, 4)
	for i := 3; i >= 0; i-- {
		b[i] = hexdigits[n&0xf]
		n >>= 4
	}
	return string(b)
}

func TestRead_MinimalV0Advertisement(t *testing.T) {
	payload := zeroHash40() + " capabilities^{}\x00multi_ack thin-pack ofs-delta agent=git/2.0\n"
	wire := pkt(payload) + pkt("")

	reader := NewReader(pktline.NewDecoder(bytes.NewBufferString(wire)))
	result, err := reader.Read()
	require.NoError(t, err)

	assert.Equal(t, VersionV0, result.Version)
	assert.Equal(t, 0, result.Refs.Len())
	assert.Empty(t, result.Refs.AdditionalHaves())
	v, ok := result.Capabilities.Value("agent")
	require.True(t, ok)
	assert.Equal(t, "git/2.0", v)
}

func TestRead_V0WithSymref(t *testing.T) {
	id := strings.Repeat("a", 40)
	first := id + " refs/heads/main\x00symref=HEAD:refs/heads/main\n"
	second := id + " HEAD\n"
	wire := pkt(first) + pkt(second) + pkt("")

	reader := NewReader(pktline.NewDecoder(bytes.NewBufferString(wire)))
	result, err := reader.Read()
	require.NoError(t, err)

	main, ok := result.Refs.Get("refs/heads/main")
	require.True(t, ok)
	assert.True(t, main.ID.Is(main.ID))

	head, ok := result.Refs.Get("HEAD")
	require.True(t, ok)
	assert.Equal(t, "refs/heads/main", head.Target)
}

func TestRead_V0PeeledTag(t *testing.T) {
	idTag := strings.Repeat("b", 40)
	idTarget := strings.Repeat("c", 40)
	first := idTag + " refs/tags/v1\n"
	second := idTarget + " refs/tags/v1^{}\n"
	wire := pkt(first) + pkt(second) + pkt("")

	reader := NewReader(pktline.NewDecoder(bytes.NewBufferString(wire)))
	result, err := reader.Read()
	require.NoError(t, err)

	require.Equal(t, 1, result.Refs.Len())
	v1, ok := result.Refs.Get("refs/tags/v1")
	require.True(t, ok)
	assert.True(t, v1.Peeled.Is(v1.Peeled))
}

func TestRead_V2AdvertisesCapabilitiesOnly(t *testing.T) {
	wire := pkt("version 2") + pkt("ls-refs\n") + pkt("agent=git/2.40\n") + pkt("")

	reader := NewReader(pktline.NewDecoder(bytes.NewBufferString(wire)))
	result, err := reader.Read()
	require.NoError(t, err)

	assert.Equal(t, VersionV2, result.Version)
	assert.Nil(t, result.Refs)
	assert.True(t, result.Capabilities.Has("ls-refs"))
}

func TestRead_NoRemoteRepository(t *testing.T) {
	wire := pkt("")
	reader := NewReader(pktline.NewDecoder(bytes.NewBufferString(wire)))
	_, err := reader.Read()
	assert.ErrorIs(t, err, ErrNoRemoteRepository)
}

func TestRead_RemoteRepositoryError(t *testing.T) {
	wire := pkt("ERR access denied")
	reader := NewReader(pktline.NewDecoder(bytes.NewBufferString(wire)))
	_, err := reader.Read()
	var remoteErr *RemoteRepositoryError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "access denied", remoteErr.Message)
}

func TestLsRefs_RequestAndResponse(t *testing.T) {
	var buf bytes.Buffer
	enc := pktline.NewEncoder(&buf)

	id := strings.Repeat("d", 40)
	idTag := strings.Repeat("e", 40)
	idObj := strings.Repeat("f", 40)
	response := pkt(id+" HEAD symref-target:refs/heads/trunk\n") +
		pkt(id+" refs/heads/trunk\n") +
		pkt(idTag+" refs/tags/v2 peeled:"+idObj+"\n") +
		pkt("")

	requester := NewLsRefsRequester(enc, pktline.NewDecoder(bytes.NewBufferString(response)))
	result, err := requester.Response()
	require.NoError(t, err)

	require.Equal(t, 3, result.Len())

	head, ok := result.Get("HEAD")
	require.True(t, ok)
	assert.Equal(t, "refs/heads/trunk", head.Target)

	tag, ok := result.Get("refs/tags/v2")
	require.True(t, ok)
	assert.True(t, tag.Peeled.Is(tag.Peeled))
}
