package testing

import "github.com/en-tropyc/blueshift/internal/core/amount"

// TxResult represents the result of applying a transaction.
type TxResult struct {
	// Code is the result code, e.g. "tesSUCCESS".
	Code string

	// Success indicates whether the transaction was applied.
	Success bool

	Message string

	// Err is the error the engine returned, nil on success.
	Err error

	Hash  [32]byte
	Fee   amount.Amount
	Moved amount.Amount
}

// Result codes the vault tests check for.
const (
	TesSUCCESS        = "tesSUCCESS"
	TecDUPLICATE      = "tecDUPLICATE"
	TecNO_ENTRY       = "tecNO_ENTRY"
	TecUNFUNDED       = "tecUNFUNDED"
	TemBAD_AMOUNT     = "temBAD_AMOUNT"
	TemBAD_IDENTIFIER = "temBAD_IDENTIFIER"
	TefPAST_SEQ       = "tefPAST_SEQ"
	TerNO_ACCOUNT     = "terNO_ACCOUNT"
	TerINSUF_FEE_B    = "terINSUF_FEE_B"
)
