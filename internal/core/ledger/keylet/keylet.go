package keylet

import (
	"encoding/binary"

	"github.com/en-tropyc/blueshift/internal/core/ledger/entry"
	crypto "github.com/en-tropyc/blueshift/internal/crypto/common"
)

// Space identifiers for keylet generation. Each entry kind hashes under its
// own namespace so keys of different kinds never collide.
const (
	spaceAccount uint16 = 'a' // Account root
	spaceHolding uint16 = 'h' // Value held at a derived address
	spaceVault   uint16 = 'V' // Vault
)

// VaultSeed is the domain tag mixed into every vault identifier.
const VaultSeed = "vault"

// Keylet represents an addressable location in the ledger state.
// It combines a type identifier with a 256-bit key.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
}

// indexHash computes a keylet key by hashing the space and provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	spaceBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(spaceBytes, space)

	inputs := make([][]byte, 0, len(data)+1)
	inputs = append(inputs, spaceBytes)
	inputs = append(inputs, data...)

	return crypto.Sha512Half(inputs...)
}

// Account returns the keylet for an account root entry.
func Account(accountID [20]byte) Keylet {
	return Keylet{
		Type: entry.TypeAccountRoot,
		Key:  indexHash(spaceAccount, accountID[:]),
	}
}

// Vault returns the keylet of the vault owned by owner under programID.
// The key doubles as the vault's public identifier.
func Vault(programID [32]byte, owner [20]byte) Keylet {
	return Keylet{
		Type: entry.TypeVault,
		Key:  indexHash(spaceVault, []byte(VaultSeed), programID[:], owner[:]),
	}
}

// Holding returns the keylet for the value parked at a derived address.
func Holding(address [32]byte) Keylet {
	return Keylet{
		Type: entry.TypeHolding,
		Key:  indexHash(spaceHolding, address[:]),
	}
}
