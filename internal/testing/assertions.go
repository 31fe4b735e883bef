package testing

import (
	"testing"

	"github.com/en-tropyc/blueshift/internal/core/amount"
	"github.com/stretchr/testify/require"
)

// RequireTxSuccess asserts that a transaction result indicates success.
func RequireTxSuccess(t *testing.T, result TxResult) {
	t.Helper()
	require.True(t, result.Success,
		"Expected transaction success, got %s: %v", result.Code, result.Err)
	require.Equal(t, TesSUCCESS, result.Code)
	require.NoError(t, result.Err)
}

// RequireTxFail asserts that a transaction failed with a specific code and
// charged nothing.
func RequireTxFail(t *testing.T, result TxResult, expectedCode string) {
	t.Helper()
	require.False(t, result.Success,
		"Expected transaction failure with code %s, but transaction succeeded", expectedCode)
	require.Equal(t, expectedCode, result.Code,
		"Expected failure code %s, got %s: %v", expectedCode, result.Code, result.Err)
	require.Error(t, result.Err)
	require.True(t, result.Fee.IsZero(), "failed transaction charged a fee of %s", result.Fee)
}

// RequireTxError asserts that a transaction failed with an error matching target.
func RequireTxError(t *testing.T, result TxResult, target error) {
	t.Helper()
	require.False(t, result.Success, "Expected %v, but transaction succeeded", target)
	require.ErrorIs(t, result.Err, target)
}

// RequireBalance asserts acc's external balance.
func RequireBalance(t *testing.T, env *TestEnv, acc *Account, expected amount.Amount) {
	t.Helper()
	actual := env.Balance(acc)
	require.Equal(t, expected, actual,
		"Account %s balance mismatch: expected %d units, got %d units",
		acc.Name, expected.Units(), actual.Units())
}

// RequireSequence asserts the sequence acc's next transaction must carry.
func RequireSequence(t *testing.T, env *TestEnv, acc *Account, expected uint64) {
	t.Helper()
	require.Equal(t, expected, env.Seq(acc), "Account %s sequence mismatch", acc.Name)
}

// RequireVaultBalance asserts that acc's vault exists and holds expected,
// both as recorded and as held by the ledger.
func RequireVaultBalance(t *testing.T, env *TestEnv, acc *Account, expected amount.Amount) {
	t.Helper()
	v := env.Vault(acc)
	require.True(t, v.Exists, "Account %s has no vault", acc.Name)
	require.Equal(t, expected, v.Balance, "Vault of %s records the wrong balance", acc.Name)
	require.Equal(t, expected, v.Held, "Ledger holds the wrong value for the vault of %s", acc.Name)
}

// RequireNoVault asserts that acc has no vault and nothing is held for it.
func RequireNoVault(t *testing.T, env *TestEnv, acc *Account) {
	t.Helper()
	v := env.Vault(acc)
	require.False(t, v.Exists, "Account %s still has a vault", acc.Name)
	require.True(t, v.Held.IsZero(), "Ledger still holds %s for %s", v.Held, acc.Name)
}

// AssertNoBalanceChange runs fn and asserts acc's balance is unchanged.
func AssertNoBalanceChange(t *testing.T, env *TestEnv, acc *Account, fn func()) {
	t.Helper()
	before := env.Balance(acc)
	fn()
	require.Equal(t, before, env.Balance(acc), "Account %s balance changed", acc.Name)
}
