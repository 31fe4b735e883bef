package keylet

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/en-tropyc/blueshift/internal/core/ledger/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountKey(t *testing.T) {
	// rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh
	var id [20]byte
	raw, err := hex.DecodeString("b5f762798a53d543a014caf8b297cff8f2f937e8")
	require.NoError(t, err)
	copy(id[:], raw)

	k := Account(id)
	assert.Equal(t, entry.TypeAccountRoot, k.Type)

	full := sha512.Sum512(append([]byte{0x00, 'a'}, id[:]...))
	assert.Equal(t, full[:32], k.Key[:])
}

func TestVaultIsPure(t *testing.T) {
	program := [32]byte{0xAA}
	owner := [20]byte{0x01}

	first := Vault(program, owner)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Vault(program, owner))
	}
	assert.Equal(t, entry.TypeVault, first.Type)
}

func TestVaultKeysDoNotCollide(t *testing.T) {
	program := [32]byte{0xAA}
	seen := make(map[[32]byte]string)

	for i := 0; i < 2000; i++ {
		var owner [20]byte
		copy(owner[:], fmt.Sprintf("owner-%d", i))
		k := Vault(program, owner).Key

		prev, dup := seen[k]
		require.False(t, dup, "owner %d collides with %s", i, prev)
		seen[k] = fmt.Sprintf("owner-%d", i)
	}
}

func TestVaultDependsOnProgram(t *testing.T) {
	owner := [20]byte{0x42}
	assert.NotEqual(t, Vault([32]byte{1}, owner).Key, Vault([32]byte{2}, owner).Key)
}

func TestNamespacesSeparateKinds(t *testing.T) {
	var addr [32]byte
	var owner [20]byte
	copy(addr[:], owner[:])

	assert.NotEqual(t, Account(owner).Key, Holding(addr).Key)
	assert.NotEqual(t, Vault([32]byte{}, owner).Key, Holding(addr).Key)
}
