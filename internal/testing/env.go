package testing

import (
	"context"
	"testing"

	"github.com/en-tropyc/blueshift/internal/core/amount"
	"github.com/en-tropyc/blueshift/internal/core/engine"
	"github.com/en-tropyc/blueshift/internal/core/ledger"
	"github.com/en-tropyc/blueshift/internal/core/tx"
	"github.com/en-tropyc/blueshift/internal/core/vault"
	"github.com/en-tropyc/blueshift/internal/storage/database"
	"github.com/en-tropyc/blueshift/internal/storage/nodestore"
)

// DefaultFunding is what Fund credits: two coins, as a devnet airdrop does.
const DefaultFunding = 2 * amount.UnitsPerCoin

// EnvConfig holds the ledger parameters of a TestEnv.
type EnvConfig struct {
	ProgramID      [32]byte
	MinimumBalance amount.Amount
	BaseFee        amount.Amount
}

// DefaultEnvConfig mirrors a fresh deployment: the 890880-unit minimum and a
// small fee.
func DefaultEnvConfig() EnvConfig {
	return EnvConfig{
		ProgramID:      [32]byte{'v', 'a', 'u', 'l', 't'},
		MinimumBalance: 890_880,
		BaseFee:        10,
	}
}

// TestEnv manages a test ledger environment for vault transactions.
type TestEnv struct {
	t      *testing.T
	engine *engine.Engine
	store  *ledger.Store
	clock  *ManualClock
	config EnvConfig
}

// NewTestEnv creates an environment with DefaultEnvConfig over memory.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return NewTestEnvWithConfig(t, DefaultEnvConfig())
}

// NewTestEnvWithConfig creates an environment over memory.
func NewTestEnvWithConfig(t *testing.T, cfg EnvConfig) *TestEnv {
	t.Helper()
	db, err := nodestore.Open(nodestore.BackendMemory, "")
	if err != nil {
		t.Fatalf("Failed to open memory store: %v", err)
	}
	return newEnv(t, db, cfg)
}

// NewTestEnvBacked creates an environment whose ledger lives in pebble under
// t.TempDir().
func NewTestEnvBacked(t *testing.T) *TestEnv {
	t.Helper()
	db, err := nodestore.Open(nodestore.BackendPebble, t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open pebble store: %v", err)
	}
	return newEnv(t, db, DefaultEnvConfig())
}

func newEnv(t *testing.T, db database.DB, cfg EnvConfig) *TestEnv {
	t.Helper()
	store, err := ledger.NewStore(db, 256)
	if err != nil {
		t.Fatalf("Failed to create ledger store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	clock := NewManualClock()
	return &TestEnv{
		t:     t,
		store: store,
		clock: clock,
		engine: engine.New(store, engine.Config{
			ProgramID:      cfg.ProgramID,
			MinimumBalance: cfg.MinimumBalance,
			BaseFee:        cfg.BaseFee,
		}, engine.WithClock(clock.Now)),
		config: cfg,
	}
}

func (e *TestEnv) Engine() *engine.Engine { return e.engine }
func (e *TestEnv) Clock() *ManualClock { return e.clock }
func (e *TestEnv) BaseFee() amount.Amount { return e.config.BaseFee }

// Fund credits DefaultFunding to each account.
func (e *TestEnv) Fund(accounts ...*Account) {
	e.t.Helper()
	for _, acc := range accounts {
		e.FundAmount(acc, DefaultFunding)
	}
}

// FundAmount credits amt to acc, creating its account when needed.
func (e *TestEnv) FundAmount(acc *Account, amt amount.Amount) {
	e.t.Helper()
	if _, err := e.engine.Fund(context.Background(), acc.Owner, amt); err != nil {
		e.t.Fatalf("Failed to fund %s: %v", acc, err)
	}
}

// VaultID is the identifier of acc's vault.
func (e *TestEnv) VaultID(acc *Account) vault.Identifier {
	return e.engine.Deriver().Derive(acc.Owner)
}

// Deposit creates acc's vault with amt at the account's next sequence.
func (e *TestEnv) Deposit(acc *Account, amt amount.Amount) TxResult {
	e.t.Helper()
	return e.DepositTo(acc, e.VaultID(acc), amt)
}

// DepositTo deposits into a caller-chosen identifier.
func (e *TestEnv) DepositTo(acc *Account, id vault.Identifier, amt amount.Amount) TxResult {
	e.t.Helper()
	return e.Submit(acc, tx.NewDeposit(id, amt, e.Seq(acc)))
}

// Withdraw empties and closes acc's vault.
func (e *TestEnv) Withdraw(acc *Account) TxResult {
	e.t.Helper()
	return e.WithdrawFrom(acc, e.VaultID(acc))
}

// WithdrawFrom withdraws from a caller-chosen identifier.
func (e *TestEnv) WithdrawFrom(acc *Account, id vault.Identifier) TxResult {
	e.t.Helper()
	return e.Submit(acc, tx.NewWithdraw(id, e.Seq(acc)))
}

// Submit signs t with acc's key and applies it.
func (e *TestEnv) Submit(acc *Account, t *tx.Transaction) TxResult {
	e.t.Helper()
	if err := t.Sign(acc.Key); err != nil {
		e.t.Fatalf("Failed to sign %s for %s: %v", t.TxType, acc, err)
	}
	res, err := e.engine.Submit(context.Background(), t)
	e.clock.Advance(1)
	return TxResult{
		Code:    res.Result.String(),
		Success: res.Applied,
		Message: res.Message,
		Err:     err,
		Hash:    res.Hash,
		Fee:     res.Fee,
		Moved:   res.Moved,
	}
}

// Seq returns the sequence acc's next transaction must carry, or 1 when the
// account does not exist yet.
func (e *TestEnv) Seq(acc *Account) uint64 {
	e.t.Helper()
	info := e.account(acc)
	if !info.Exists {
		return 1
	}
	return info.Sequence
}

// Balance is acc's external balance.
func (e *TestEnv) Balance(acc *Account) amount.Amount {
	e.t.Helper()
	return e.account(acc).Balance
}

// AccountExists reports whether acc has an external account.
func (e *TestEnv) AccountExists(acc *Account) bool {
	e.t.Helper()
	return e.account(acc).Exists
}

// Vault returns the state at acc's vault identifier.
func (e *TestEnv) Vault(acc *Account) engine.VaultInfo {
	e.t.Helper()
	info, err := e.engine.VaultInfo(context.Background(), acc.Owner)
	if err != nil {
		e.t.Fatalf("Failed to read vault of %s: %v", acc, err)
	}
	return info
}

func (e *TestEnv) account(acc *Account) engine.AccountInfo {
	e.t.Helper()
	info, err := e.engine.AccountInfo(context.Background(), acc.Owner)
	if err != nil {
		e.t.Fatalf("Failed to read account %s: %v", acc, err)
	}
	return info
}
