// Package testing provides test infrastructure for vault transaction testing.
//
// TestEnv wraps an engine over a throwaway ledger and deterministic named
// accounts, so integration tests read as a sequence of ledger actions:
//
//	func TestDeposit(t *testing.T) {
//	    env := jtx.NewTestEnv(t)
//	    alice := jtx.NewAccount("alice")
//	    env.Fund(alice)
//
//	    result := env.Deposit(alice, jtx.Coins(1))
//	    jtx.RequireTxSuccess(t, result)
//	    jtx.RequireVaultBalance(t, env, alice, jtx.Coins(1))
//	}
//
// NewTestEnv keeps state in memory; NewTestEnvBacked stores it in a pebble
// database under t.TempDir().
package testing
