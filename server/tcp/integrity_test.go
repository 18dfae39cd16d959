package tcp

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"weavelab.xyz/nettest/protocol"
)

// chunkWithDigestByte searches for a filler chunk whose digest starts (or
// not) with the magic byte.
func chunkWithDigestByte(t *testing.T, match bool) []byte {
	t.Helper()
	mac, err := newIntegrityHash()
	require.NoError(t, err)
	chunk := make([]byte, protocol.BufferSize)
	for i := uint32(0); i < 1<<16; i++ {
		binary.BigEndian.PutUint32(chunk, i)
		if mac.match(chunk) == match {
			return chunk
		}
	}
	t.Fatalf("no chunk found with match=%v", match)
	return nil
}

func TestIntegrityDigest(t *testing.T) {
	mac, err := newIntegrityHash()
	require.NoError(t, err)

	chunk := protocol.NewDataFrame()[1:]
	want := blake2b.Sum512(append(append([]byte{}, integrityKey...), chunk...))
	require.Equal(t, want, mac.digest(chunk))

	// state from an earlier chunk must not leak into the next digest
	other := make([]byte, protocol.BufferSize)
	require.NotEqual(t, want, mac.digest(other))
	require.Equal(t, want, mac.digest(chunk))
}

func TestIntegrityMatch(t *testing.T) {
	mac, err := newIntegrityHash()
	require.NoError(t, err)

	hit := chunkWithDigestByte(t, true)
	require.Equal(t, integrityMagic, mac.digest(hit)[0])
	require.True(t, mac.match(hit))

	miss := chunkWithDigestByte(t, false)
	require.NotEqual(t, integrityMagic, mac.digest(miss)[0])
	require.False(t, mac.match(miss))
}
