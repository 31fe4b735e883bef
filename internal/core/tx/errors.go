package tx

import "errors"

// Preflight errors: the transaction is ill-formed on its own.
var (
	ErrUnknownType      = errors.New("temINVALID: unknown transaction type")
	ErrBadSequence      = errors.New("temBAD_SEQUENCE: sequence must be non-zero")
	ErrMissingSignature = errors.New("temBAD_SIGNATURE: transaction is not signed")
	ErrMalformed        = errors.New("temMALFORMED: malformed transaction")
)

// Errors against the signer's account.
var (
	ErrNoAccount       = errors.New("terNO_ACCOUNT: signing account does not exist")
	ErrPastSequence    = errors.New("tefPAST_SEQ: sequence already used")
	ErrFutureSequence  = errors.New("terPRE_SEQ: sequence is ahead of the account")
	ErrInsufficientFee = errors.New("terINSUF_FEE_B: balance cannot pay the fee")
)
