package entry

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ugorji/go/codec"
)

// Type represents a ledger entry type
type Type uint16

const (
	TypeAccountRoot Type = 0x0061 // External owner accounts
	TypeHolding     Type = 0x0068 // Native value parked at a derived address
	TypeVault       Type = 0x0084 // Custody vault records
)

// String returns the string representation of the Type
func (t Type) String() string {
	switch t {
	case TypeAccountRoot:
		return "AccountRoot"
	case TypeHolding:
		return "Holding"
	case TypeVault:
		return "Vault"
	default:
		return fmt.Sprintf("Unknown(%#x)", uint16(t))
	}
}

var (
	ErrTruncated    = errors.New("entry data truncated")
	ErrTypeMismatch = errors.New("entry type mismatch")
)

// Entry is implemented by every ledger entry body.
type Entry interface {
	EntryType() Type
}

var cborHandle = &codec.CborHandle{}

// Encode serializes e as a two byte big-endian type tag followed by CBOR.
func Encode(e Entry) ([]byte, error) {
	out := make([]byte, 2, 64)
	binary.BigEndian.PutUint16(out, uint16(e.EntryType()))
	var body []byte
	if err := codec.NewEncoderBytes(&body, cborHandle).Encode(e); err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.EntryType(), err)
	}
	return append(out, body...), nil
}

// Decode parses data into e, checking the type tag first.
func Decode(data []byte, e Entry) error {
	if len(data) < 2 {
		return ErrTruncated
	}
	got := Type(binary.BigEndian.Uint16(data))
	if got != e.EntryType() {
		return fmt.Errorf("%w: have %s, want %s", ErrTypeMismatch, got, e.EntryType())
	}
	if err := codec.NewDecoderBytes(data[2:], cborHandle).Decode(e); err != nil {
		return fmt.Errorf("decode %s: %w", got, err)
	}
	return nil
}

// TypeOf returns the type tag of encoded entry data.
func TypeOf(data []byte) (Type, error) {
	if len(data) < 2 {
		return 0, ErrTruncated
	}
	return Type(binary.BigEndian.Uint16(data)), nil
}
