package crypto

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	crypto "github.com/en-tropyc/blueshift/internal/crypto/common"
)

// PublicKeySize is the length of a compressed secp256k1 public key.
const PublicKeySize = 33

var (
	ErrInvalidPrivateKey = errors.New("invalid private key")
	ErrInvalidPublicKey  = errors.New("invalid public key")
	ErrInvalidSignature  = errors.New("invalid signature")
)

// KeyPair is a secp256k1 signing key and its public half.
type KeyPair struct {
	priv *btcec.PrivateKey
}

// GenerateKeyPair creates a key pair from the system random source.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate private key: %w", err)
	}
	return &KeyPair{priv: priv}, nil
}

// KeyPairFromSeed deterministically derives a key pair from seed. Candidate
// scalars are SHA-512-half(seed || counter), taking the first one that lies
// in [1, N).
func KeyPairFromSeed(seed []byte) *KeyPair {
	order := btcec.S256().Params().N
	counter := make([]byte, 4)
	for i := uint32(0); ; i++ {
		binary.BigEndian.PutUint32(counter, i)
		candidate := crypto.Sha512Half(seed, counter)
		k := new(big.Int).SetBytes(candidate[:])
		if k.Sign() == 0 || k.Cmp(order) >= 0 {
			continue
		}
		priv, _ := btcec.PrivKeyFromBytes(candidate[:])
		return &KeyPair{priv: priv}
	}
}

// KeyPairFromHex parses a hex encoded 32-byte private key.
func KeyPairFromHex(s string) (*KeyPair, error) {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		return nil, ErrInvalidPrivateKey
	}
	k := new(big.Int).SetBytes(raw)
	if k.Sign() == 0 || k.Cmp(btcec.S256().Params().N) >= 0 {
		return nil, ErrInvalidPrivateKey
	}
	priv, _ := btcec.PrivKeyFromBytes(raw)
	return &KeyPair{priv: priv}, nil
}

// PublicKey returns the compressed public key.
func (k *KeyPair) PublicKey() []byte {
	return k.priv.PubKey().SerializeCompressed()
}

// PrivateKeyHex returns the private scalar as upper-case hex.
func (k *KeyPair) PrivateKeyHex() string {
	return fmt.Sprintf("%X", k.priv.Serialize())
}

// AccountID returns the account ID of the public key.
func (k *KeyPair) AccountID() [AccountIDSize]byte {
	return CalcAccountID(k.PublicKey())
}

// Sign returns the DER encoded signature of a 32-byte digest.
func (k *KeyPair) Sign(digest [32]byte) []byte {
	return ecdsa.Sign(k.priv, digest[:]).Serialize()
}

// Verify checks a DER signature of digest against a compressed public key.
// Only fully canonical (low-S) signatures are accepted, so a signed blob has
// exactly one valid encoding and therefore one transaction hash.
func Verify(publicKey []byte, digest [32]byte, signature []byte) error {
	if len(publicKey) != PublicKeySize {
		return ErrInvalidPublicKey
	}
	if ECDSACanonicality(signature) != CanonicityFullyCanonical {
		return ErrInvalidSignature
	}
	pub, err := btcec.ParsePubKey(publicKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if !sig.Verify(digest[:], pub) {
		return ErrInvalidSignature
	}
	return nil
}
