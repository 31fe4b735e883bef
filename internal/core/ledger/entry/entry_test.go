package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCarriesTypeTag(t *testing.T) {
	data, err := Encode(&Vault{Owner: [20]byte{1, 2, 3}, Balance: 500})
	require.NoError(t, err)

	typ, err := TypeOf(data)
	require.NoError(t, err)
	assert.Equal(t, TypeVault, typ)

	var v Vault
	require.NoError(t, Decode(data, &v))
	assert.Equal(t, [20]byte{1, 2, 3}, v.Owner)
	assert.Equal(t, uint64(500), v.Balance)
}

func TestDecodeRejectsWrongType(t *testing.T) {
	data, err := Encode(&Holding{Amount: 7})
	require.NoError(t, err)

	var root AccountRoot
	assert.ErrorIs(t, Decode(data, &root), ErrTypeMismatch)
	assert.ErrorIs(t, Decode(data[:1], &root), ErrTruncated)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "AccountRoot", TypeAccountRoot.String())
	assert.Equal(t, "Vault", TypeVault.String())
	assert.Equal(t, "Unknown(0x1)", Type(1).String())
}
