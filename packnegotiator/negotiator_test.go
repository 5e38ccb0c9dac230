package packnegotiator

import (
	"bytes"
	"compress/zlib"
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitwire-go/gitwire/pktline"
	"github.com/gitwire-go/gitwire/protocol/hash"
	"github.com/gitwire-go/gitwire/storage"
)

// buildPackfile assembles a minimal PACK stream containing one undeltified
// blob, for feeding through the side-band/packfile decode path end to end.
func buildPackfile(t *testing.T, objType byte, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("PACK")
	var versionAndCount [8]byte
	binary.BigEndian.PutUint32(versionAndCount[0:4], 2)
	binary.BigEndian.PutUint32(versionAndCount[4:8], 1)
	buf.Write(versionAndCount[:])

	size := len(payload)
	first := byte(objType<<4) | byte(size&0x0f)
	size >>= 4
	if size > 0 {
		first |= 0x80
	}
	buf.WriteByte(first)
	for size > 0 {
		b := byte(size & 0x7f)
		size >>= 7
		if size > 0 {
			b |= 0x80
		}
		buf.WriteByte(b)
	}

	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func sidebandPack(t *testing.T, pack []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := pktline.NewEncoder(&buf)
	require.NoError(t, enc.Write(append([]byte{1}, pack...)))
	require.NoError(t, enc.Flush())
	return buf.Bytes()
}

func TestNegotiate_DecodesPackfileResponse(t *testing.T) {
	payload := []byte("blob content")
	pack := buildPackfile(t, 3, payload) // 3 = commit/tree/blob type bits for OBJ_BLOB

	var response bytes.Buffer
	respEnc := pktline.NewEncoder(&response)
	require.NoError(t, respEnc.WriteString("packfile\n"))
	response.Write(sidebandPack(t, pack))
	require.NoError(t, respEnc.Flush())

	var sent bytes.Buffer
	store := storage.NewInMemoryStorage(context.Background())

	n := &Negotiator{
		Enc:     pktline.NewEncoder(&sent),
		Dec:     pktline.NewDecoder(&response),
		Storage: store,
	}

	tagsIncluded, err := n.Negotiate(context.Background(), []hash.Hash{hash.MustFromHex("0102030405060708090a0b0c0d0e0f1011121314")}, nil)
	require.NoError(t, err)
	assert.False(t, tagsIncluded)
	assert.Equal(t, 1, store.Len())

	assert.Contains(t, sent.String(), "command=fetch")
	assert.Contains(t, sent.String(), "want 0102030405060708090a0b0c0d0e0f1011121314")
	assert.Contains(t, sent.String(), "done")
}
