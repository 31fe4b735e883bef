package vault_test

import (
	"github.com/en-tropyc/blueshift/internal/core/amount"
	"github.com/en-tropyc/blueshift/internal/core/tx"
	jtx "github.com/en-tropyc/blueshift/internal/testing"
)

// depositAt builds an unsigned deposit into acc's vault at a fixed sequence.
func depositAt(env *jtx.TestEnv, acc *jtx.Account, amt amount.Amount, seq uint64) *tx.Transaction {
	return tx.NewDeposit(env.VaultID(acc), amt, seq)
}
