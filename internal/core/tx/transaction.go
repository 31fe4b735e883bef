package tx

import (
	"fmt"

	"github.com/en-tropyc/blueshift/internal/core/amount"
	"github.com/en-tropyc/blueshift/internal/core/vault"
	"github.com/en-tropyc/blueshift/internal/crypto"
	hashing "github.com/en-tropyc/blueshift/internal/crypto/common"
	"github.com/en-tropyc/blueshift/internal/protocol"
	"github.com/ugorji/go/codec"
)

// Type identifies a transaction kind.
type Type uint16

const (
	TypeDeposit  Type = 1
	TypeWithdraw Type = 2
)

func (t Type) String() string {
	switch t {
	case TypeDeposit:
		return "VaultDeposit"
	case TypeWithdraw:
		return "VaultWithdraw"
	default:
		return fmt.Sprintf("Unknown(%d)", uint16(t))
	}
}

// Transaction is a signed vault request. The signer's public key determines
// the owner; Vault is the identifier the signer claims for itself.
type Transaction struct {
	TxType        Type     `codec:"type"`
	SigningPubKey []byte   `codec:"signing_pub_key"`
	Sequence      uint64   `codec:"sequence"`
	Vault         [32]byte `codec:"vault"`
	Amount        uint64   `codec:"amount,omitempty"`
	TxnSignature  []byte   `codec:"txn_signature,omitempty"`
}

// NewDeposit builds an unsigned deposit of amt into the vault at id.
func NewDeposit(id vault.Identifier, amt amount.Amount, sequence uint64) *Transaction {
	return &Transaction{TxType: TypeDeposit, Vault: id, Amount: amt.Units(), Sequence: sequence}
}

// NewWithdraw builds an unsigned full withdrawal from the vault at id.
func NewWithdraw(id vault.Identifier, sequence uint64) *Transaction {
	return &Transaction{TxType: TypeWithdraw, Vault: id, Sequence: sequence}
}

var canonical = func() *codec.CborHandle {
	h := &codec.CborHandle{}
	h.Canonical = true
	return h
}()

// Owner is the account controlled by the signing key.
func (t *Transaction) Owner() vault.Owner {
	return vault.OwnerFromPublicKey(t.SigningPubKey)
}

func (t *Transaction) VaultID() vault.Identifier {
	return vault.Identifier(t.Vault)
}

func (t *Transaction) DepositAmount() amount.Amount {
	return amount.Amount(t.Amount)
}

// Validate performs the checks that need no ledger state.
func (t *Transaction) Validate() error {
	switch t.TxType {
	case TypeDeposit:
	case TypeWithdraw:
		if t.Amount != 0 {
			return fmt.Errorf("%w: withdraw carries an amount", ErrMalformed)
		}
	default:
		return ErrUnknownType
	}
	if t.Sequence == 0 {
		return ErrBadSequence
	}
	if len(t.SigningPubKey) != crypto.PublicKeySize {
		return fmt.Errorf("%w: signing key is %d bytes", crypto.ErrInvalidPublicKey, len(t.SigningPubKey))
	}
	if len(t.TxnSignature) == 0 {
		return ErrMissingSignature
	}
	return nil
}

// Blob returns the canonical encoding of the transaction.
func (t *Transaction) Blob() ([]byte, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, canonical).Encode(t); err != nil {
		return nil, fmt.Errorf("encode %s: %w", t.TxType, err)
	}
	return out, nil
}

// Decode parses a blob produced by Blob.
func Decode(blob []byte) (*Transaction, error) {
	var t Transaction
	if err := codec.NewDecoderBytes(blob, canonical).Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &t, nil
}

// SigningHash is the digest covered by the signature: every field except
// the signature, under the signing prefix.
func (t *Transaction) SigningHash() ([32]byte, error) {
	unsigned := *t
	unsigned.TxnSignature = nil
	blob, err := unsigned.Blob()
	if err != nil {
		return [32]byte{}, err
	}
	return hashing.Sha512Half(protocol.HashPrefixTxSign[:], blob), nil
}

// Hash is the transaction ID.
func (t *Transaction) Hash() ([32]byte, error) {
	blob, err := t.Blob()
	if err != nil {
		return [32]byte{}, err
	}
	return hashing.Sha512Half(protocol.HashPrefixTransactionID[:], blob), nil
}

// Sign sets the signing key from kp and signs the transaction.
func (t *Transaction) Sign(kp *crypto.KeyPair) error {
	t.SigningPubKey = kp.PublicKey()
	digest, err := t.SigningHash()
	if err != nil {
		return err
	}
	t.TxnSignature = kp.Sign(digest)
	return nil
}

// VerifySignature checks TxnSignature against SigningPubKey.
func (t *Transaction) VerifySignature() error {
	if len(t.TxnSignature) == 0 {
		return ErrMissingSignature
	}
	digest, err := t.SigningHash()
	if err != nil {
		return err
	}
	return crypto.Verify(t.SigningPubKey, digest, t.TxnSignature)
}
