package tx

import (
	"errors"
	"fmt"

	"github.com/en-tropyc/blueshift/internal/core/vault"
	"github.com/en-tropyc/blueshift/internal/crypto"
)

// Result represents a transaction result code
type Result int

// Result codes are grouped by category: tes success, tec failed but final,
// tef failed and never applicable, tem malformed, ter retry later.
const (
	TesSUCCESS Result = 0

	TecUNFUNDED         Result = 129
	TecNO_PERMISSION    Result = 139
	TecNO_ENTRY         Result = 140
	TecINVARIANT_FAILED Result = 147
	TecDUPLICATE        Result = 149

	TefINTERNAL      Result = -192
	TefPAST_SEQ      Result = -190
	TefBAD_SIGNATURE Result = -186

	TemMALFORMED      Result = -299
	TemBAD_AMOUNT     Result = -298
	TemBAD_SEQUENCE   Result = -283
	TemBAD_SIGNATURE  Result = -282
	TemINVALID        Result = -277
	TemBAD_IDENTIFIER Result = -276

	TerINSUF_FEE_B Result = -97
	TerNO_ACCOUNT  Result = -96
	TerPRE_SEQ     Result = -92
)

// String returns the string representation of the result code
func (r Result) String() string {
	switch r {
	case TesSUCCESS:
		return "tesSUCCESS"
	case TecUNFUNDED:
		return "tecUNFUNDED"
	case TecNO_PERMISSION:
		return "tecNO_PERMISSION"
	case TecNO_ENTRY:
		return "tecNO_ENTRY"
	case TecINVARIANT_FAILED:
		return "tecINVARIANT_FAILED"
	case TecDUPLICATE:
		return "tecDUPLICATE"
	case TefINTERNAL:
		return "tefINTERNAL"
	case TefPAST_SEQ:
		return "tefPAST_SEQ"
	case TefBAD_SIGNATURE:
		return "tefBAD_SIGNATURE"
	case TemMALFORMED:
		return "temMALFORMED"
	case TemBAD_AMOUNT:
		return "temBAD_AMOUNT"
	case TemBAD_SEQUENCE:
		return "temBAD_SEQUENCE"
	case TemBAD_SIGNATURE:
		return "temBAD_SIGNATURE"
	case TemINVALID:
		return "temINVALID"
	case TemBAD_IDENTIFIER:
		return "temBAD_IDENTIFIER"
	case TerINSUF_FEE_B:
		return "terINSUF_FEE_B"
	case TerNO_ACCOUNT:
		return "terNO_ACCOUNT"
	case TerPRE_SEQ:
		return "terPRE_SEQ"
	default:
		return fmt.Sprintf("Unknown(%d)", r)
	}
}

// IsSuccess returns true if the result indicates success
func (r Result) IsSuccess() bool {
	return r == TesSUCCESS
}

// IsTec returns true if this is a tec (claimed cost) code
func (r Result) IsTec() bool {
	return r >= 100 && r < 200
}

// IsTef returns true if this is a tef (failure) code
func (r Result) IsTef() bool {
	return r >= -199 && r <= -100
}

// IsTem returns true if this is a tem (malformed) code
func (r Result) IsTem() bool {
	return r >= -299 && r <= -200
}

// IsTer returns true if this is a ter (retry) code
func (r Result) IsTer() bool {
	return r >= -99 && r <= -1
}

// ShouldRetry returns true if the transaction may succeed when resubmitted
// later unchanged.
func (r Result) ShouldRetry() bool {
	return r.IsTer()
}

// Message returns a human-readable message for the result
func (r Result) Message() string {
	switch r {
	case TesSUCCESS:
		return "The transaction was applied."
	case TecUNFUNDED:
		return "Insufficient balance to move the requested value."
	case TecNO_PERMISSION:
		return "The signer does not own this vault."
	case TecNO_ENTRY:
		return "No vault exists for this owner."
	case TecINVARIANT_FAILED:
		return "A ledger invariant would have been broken; nothing was applied."
	case TecDUPLICATE:
		return "A vault already exists for this owner."
	case TefINTERNAL:
		return "Internal error."
	case TefPAST_SEQ:
		return "Sequence number has already passed."
	case TefBAD_SIGNATURE:
		return "Invalid signature."
	case TemMALFORMED:
		return "Malformed transaction."
	case TemBAD_AMOUNT:
		return "Amount is zero, overflows or is below the minimum balance."
	case TemBAD_SEQUENCE:
		return "Sequence number must be non-zero."
	case TemBAD_SIGNATURE:
		return "Signature or signing key is missing or malformed."
	case TemINVALID:
		return "The transaction is ill-formed."
	case TemBAD_IDENTIFIER:
		return "Vault identifier does not belong to the signer."
	case TerINSUF_FEE_B:
		return "Account balance can't pay fee."
	case TerNO_ACCOUNT:
		return "The source account does not exist."
	case TerPRE_SEQ:
		return "Missing/inapplicable prior transaction."
	default:
		return r.String()
	}
}

// ResultFromError maps an error returned while applying a transaction to its
// result code. Unrecognised errors are internal failures.
func ResultFromError(err error) Result {
	switch {
	case err == nil:
		return TesSUCCESS
	case errors.Is(err, vault.ErrInvalidIdentifier):
		return TemBAD_IDENTIFIER
	case errors.Is(err, vault.ErrVaultAlreadyExists):
		return TecDUPLICATE
	case errors.Is(err, vault.ErrVaultNotFound):
		return TecNO_ENTRY
	case errors.Is(err, vault.ErrUnauthorized):
		return TecNO_PERMISSION
	case errors.Is(err, vault.ErrInvalidAmount):
		return TemBAD_AMOUNT
	case errors.Is(err, vault.ErrTransferFailed):
		return TecUNFUNDED
	case errors.Is(err, vault.ErrInvariantViolated):
		return TecINVARIANT_FAILED
	case errors.Is(err, ErrUnknownType):
		return TemINVALID
	case errors.Is(err, ErrBadSequence):
		return TemBAD_SEQUENCE
	case errors.Is(err, ErrMissingSignature), errors.Is(err, crypto.ErrInvalidPublicKey):
		return TemBAD_SIGNATURE
	case errors.Is(err, crypto.ErrInvalidSignature):
		return TefBAD_SIGNATURE
	case errors.Is(err, ErrMalformed):
		return TemMALFORMED
	case errors.Is(err, ErrNoAccount):
		return TerNO_ACCOUNT
	case errors.Is(err, ErrPastSequence):
		return TefPAST_SEQ
	case errors.Is(err, ErrFutureSequence):
		return TerPRE_SEQ
	case errors.Is(err, ErrInsufficientFee):
		return TerINSUF_FEE_B
	default:
		return TefINTERNAL
	}
}
