package crypto

import (
	"testing"

	crypto "github.com/en-tropyc/blueshift/internal/crypto/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPairFromSeedIsDeterministic(t *testing.T) {
	a := KeyPairFromSeed([]byte("alice"))
	b := KeyPairFromSeed([]byte("alice"))
	c := KeyPairFromSeed([]byte("bob"))

	assert.Equal(t, a.PublicKey(), b.PublicKey())
	assert.NotEqual(t, a.PublicKey(), c.PublicKey())
	assert.Len(t, a.PublicKey(), PublicKeySize)
	assert.Equal(t, CalcAccountID(a.PublicKey()), a.AccountID())
}

func TestKeyPairHexRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	parsed, err := KeyPairFromHex(kp.PrivateKeyHex())
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey(), parsed.PublicKey())

	_, err = KeyPairFromHex("zz")
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
	_, err = KeyPairFromHex("0000000000000000000000000000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestSignVerify(t *testing.T) {
	kp := KeyPairFromSeed([]byte("signer"))
	digest := crypto.Sha512Half([]byte("payload"))

	sig := kp.Sign(digest)
	require.NoError(t, Verify(kp.PublicKey(), digest, sig))

	t.Run("wrong digest", func(t *testing.T) {
		other := crypto.Sha512Half([]byte("other payload"))
		assert.ErrorIs(t, Verify(kp.PublicKey(), other, sig), ErrInvalidSignature)
	})

	t.Run("wrong key", func(t *testing.T) {
		stranger := KeyPairFromSeed([]byte("stranger"))
		assert.ErrorIs(t, Verify(stranger.PublicKey(), digest, sig), ErrInvalidSignature)
	})

	t.Run("garbage signature", func(t *testing.T) {
		assert.ErrorIs(t, Verify(kp.PublicKey(), digest, []byte{0x30, 0x01}), ErrInvalidSignature)
	})

	t.Run("short key", func(t *testing.T) {
		assert.ErrorIs(t, Verify(kp.PublicKey()[:10], digest, sig), ErrInvalidPublicKey)
	})
}
