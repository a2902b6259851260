package des

import (
	stddes "crypto/des"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vomar3/blockcipher/interfaces"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestExpandKey(t *testing.T) {
	ks, err := ExpandKey(mustHex(t, "133457799bbcdff1"))
	require.NoError(t, err)

	assert.Equal(t, uint64(0x1b02effc7072), ks[0])
	assert.Equal(t, uint64(0x79aed9dbc9e5), ks[1])
	assert.Equal(t, uint64(0xcb3d8b0e17f5), ks[15])
}

func TestExpandKeySize(t *testing.T) {
	for _, n := range []int{0, 7, 9, 16} {
		_, err := ExpandKey(make([]byte, n))
		assert.Equal(t, interfaces.KeySizeError(n), err)
	}
}

func TestKnownVector(t *testing.T) {
	c, err := NewCipher(mustHex(t, "133457799bbcdff1"))
	require.NoError(t, err)

	dst := make([]byte, BlockSize)
	c.Encrypt(dst, mustHex(t, "0123456789abcdef"))
	assert.Equal(t, "85e813540f0ab405", hex.EncodeToString(dst))

	c.Decrypt(dst, dst)
	assert.Equal(t, "0123456789abcdef", hex.EncodeToString(dst))
}

func TestUint64Path(t *testing.T) {
	c, err := NewCipher(mustHex(t, "133457799bbcdff1"))
	require.NoError(t, err)

	assert.Equal(t, uint64(0x85e813540f0ab405), c.EncryptBlock(0x0123456789abcdef))
	assert.Equal(t, uint64(0x0123456789abcdef), c.DecryptBlock(0x85e813540f0ab405))
}

func TestMatchesStandardLibrary(t *testing.T) {
	rng := rand.New(rand.NewSource(46))
	key := make([]byte, KeySize)
	src := make([]byte, BlockSize)

	for i := 0; i < 64; i++ {
		rng.Read(key)
		rng.Read(src)

		ours, err := NewCipher(key)
		require.NoError(t, err)
		ref, err := stddes.NewCipher(key)
		require.NoError(t, err)

		got, want := make([]byte, BlockSize), make([]byte, BlockSize)
		ours.Encrypt(got, src)
		ref.Encrypt(want, src)
		require.Equal(t, want, got, "key %x block %x", key, src)

		ours.Decrypt(got, want)
		require.Equal(t, src, got)
	}
}

func TestShortBlockPanics(t *testing.T) {
	c, err := NewCipher(make([]byte, KeySize))
	require.NoError(t, err)

	assert.Panics(t, func() { c.Encrypt(make([]byte, 8), make([]byte, 7)) })
	assert.Panics(t, func() { c.Decrypt(make([]byte, 7), make([]byte, 8)) })
}
