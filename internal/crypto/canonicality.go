package crypto

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Canonicality is the canonical status of a DER encoded ECDSA signature.
type Canonicality int

const (
	// CanonicityNone means the encoding is malformed or R/S are out of range.
	CanonicityNone Canonicality = iota
	// CanonicityCanonical means the signature is well formed but S > N/2, so
	// (R, N-S) is a second valid signature for the same digest.
	CanonicityCanonical
	// CanonicityFullyCanonical means S <= N/2.
	CanonicityFullyCanonical
)

var (
	curveOrder     = btcec.S256().Params().N
	curveHalfOrder = new(big.Int).Rsh(curveOrder, 1)
)

// ECDSACanonicality classifies a DER signature of the form
// 0x30 len 0x02 rlen R 0x02 slen S.
func ECDSACanonicality(sig []byte) Canonicality {
	if len(sig) < 8 || len(sig) > 72 {
		return CanonicityNone
	}
	if sig[0] != 0x30 || int(sig[1]) != len(sig)-2 {
		return CanonicityNone
	}

	rBytes, rest, ok := parseDERInteger(sig[2:])
	if !ok {
		return CanonicityNone
	}
	sBytes, rest, ok := parseDERInteger(rest)
	if !ok || len(rest) != 0 {
		return CanonicityNone
	}

	r := new(big.Int).SetBytes(rBytes)
	s := new(big.Int).SetBytes(sBytes)
	if r.Sign() <= 0 || r.Cmp(curveOrder) >= 0 {
		return CanonicityNone
	}
	if s.Sign() <= 0 || s.Cmp(curveOrder) >= 0 {
		return CanonicityNone
	}
	if s.Cmp(curveHalfOrder) <= 0 {
		return CanonicityFullyCanonical
	}
	return CanonicityCanonical
}

// parseDERInteger reads one minimally encoded, non-negative INTEGER.
func parseDERInteger(data []byte) (value, rest []byte, ok bool) {
	if len(data) < 2 || data[0] != 0x02 {
		return nil, nil, false
	}
	n := int(data[1])
	if n < 1 || n > 33 || len(data) < 2+n {
		return nil, nil, false
	}
	value = data[2 : 2+n]
	if value[0]&0x80 != 0 {
		return nil, nil, false
	}
	if value[0] == 0 && (n == 1 || value[1]&0x80 == 0) {
		return nil, nil, false
	}
	return value, data[2+n:], true
}
