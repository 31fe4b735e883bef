package vault

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	addresscodec "github.com/Peersyst/xrpl-go/address-codec"
	"github.com/en-tropyc/blueshift/internal/crypto"
)

var (
	ErrMalformedOwner      = errors.New("malformed owner address")
	ErrMalformedIdentifier = errors.New("malformed vault identifier")
)

// Owner is the 20-byte account ID of the key that controls a vault.
type Owner [crypto.AccountIDSize]byte

// OwnerFromPublicKey returns the owner controlled by a public key.
func OwnerFromPublicKey(publicKey []byte) Owner {
	return Owner(crypto.CalcAccountID(publicKey))
}

// ParseOwner accepts a classic address or 40 hex characters.
func ParseOwner(s string) (Owner, error) {
	var o Owner
	if raw, err := hex.DecodeString(s); err == nil && len(raw) == len(o) {
		copy(o[:], raw)
		return o, nil
	}
	_, id, err := addresscodec.DecodeClassicAddressToAccountID(s)
	if err != nil || len(id) != len(o) {
		return o, fmt.Errorf("%w: %q", ErrMalformedOwner, s)
	}
	copy(o[:], id)
	return o, nil
}

// String returns the classic address of the owner.
func (o Owner) String() string {
	addr, err := addresscodec.EncodeAccountIDToClassicAddress(o[:])
	if err != nil {
		return strings.ToUpper(hex.EncodeToString(o[:]))
	}
	return addr
}

func (o Owner) IsZero() bool {
	return crypto.IsZeroAccountID(o)
}

// Identifier is the 32-byte address of a vault.
type Identifier [32]byte

// ParseIdentifier reads 64 hex characters.
func ParseIdentifier(s string) (Identifier, error) {
	var id Identifier
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != len(id) {
		return id, fmt.Errorf("%w: %q", ErrMalformedIdentifier, s)
	}
	copy(id[:], raw)
	return id, nil
}

func (id Identifier) String() string {
	return strings.ToUpper(hex.EncodeToString(id[:]))
}
