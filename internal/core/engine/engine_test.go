package engine

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/en-tropyc/blueshift/internal/core/amount"
	"github.com/en-tropyc/blueshift/internal/core/ledger"
	"github.com/en-tropyc/blueshift/internal/core/ledger/entry"
	"github.com/en-tropyc/blueshift/internal/core/ledger/keylet"
	"github.com/en-tropyc/blueshift/internal/core/tx"
	"github.com/en-tropyc/blueshift/internal/core/vault"
	"github.com/en-tropyc/blueshift/internal/crypto"
	"github.com/en-tropyc/blueshift/internal/storage/journal"
	"github.com/en-tropyc/blueshift/internal/storage/nodestore"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const (
	testFee     = amount.Amount(10)
	testMinimum = amount.Amount(100)
)

type memJournal struct {
	mu   sync.Mutex
	recs []journal.Record
}

func (j *memJournal) Append(_ context.Context, rec journal.Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.recs = append(j.recs, rec)
	return nil
}

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	db, err := nodestore.Open("memory", "")
	require.NoError(t, err)
	store, err := ledger.NewStore(db, 64)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store, Config{ProgramID: [32]byte{0xAB}, MinimumBalance: testMinimum, BaseFee: testFee}, opts...)
}

type signer struct {
	kp    *crypto.KeyPair
	owner vault.Owner
}

func newSigner(name string) signer {
	kp := crypto.KeyPairFromSeed([]byte(name))
	return signer{kp: kp, owner: vault.Owner(kp.AccountID())}
}

// submitSigned signs txn as s and submits it. It is safe to call from
// goroutines.
func (e *Engine) submitSigned(s signer, txn *tx.Transaction) (ApplyResult, error) {
	if err := txn.Sign(s.kp); err != nil {
		return ApplyResult{}, err
	}
	return e.Submit(context.Background(), txn)
}

func (e *Engine) deposit(t *testing.T, s signer, amt amount.Amount, seq uint64) (ApplyResult, error) {
	t.Helper()
	return e.submitSigned(s, tx.NewDeposit(e.deriver.Derive(s.owner), amt, seq))
}

func (e *Engine) withdraw(t *testing.T, s signer, seq uint64) (ApplyResult, error) {
	t.Helper()
	return e.submitSigned(s, tx.NewWithdraw(e.deriver.Derive(s.owner), seq))
}

func (e *Engine) fund(t *testing.T, s signer, amt amount.Amount) {
	t.Helper()
	_, err := e.Fund(context.Background(), s.owner, amt)
	require.NoError(t, err)
}

// seedAccount writes s's account root directly, bypassing Fund.
func (e *Engine) seedAccount(t *testing.T, s signer, bal amount.Amount, seq uint64) {
	t.Helper()
	ctx := context.Background()
	data, err := entry.Encode(&entry.AccountRoot{Account: s.owner, Balance: bal.Units(), Sequence: seq})
	require.NoError(t, err)
	table := ledger.NewApplyStateTable(e.store.View(ctx))
	require.NoError(t, table.Insert(keylet.Account(s.owner), data))
	require.NoError(t, e.store.Apply(ctx, table.Changes()))
}

func (e *Engine) account(t *testing.T, s signer) AccountInfo {
	t.Helper()
	info, err := e.AccountInfo(context.Background(), s.owner)
	require.NoError(t, err)
	return info
}

func (e *Engine) vaultOf(t *testing.T, s signer) VaultInfo {
	t.Helper()
	info, err := e.VaultInfo(context.Background(), s.owner)
	require.NoError(t, err)
	return info
}

func TestDepositThenWithdraw(t *testing.T) {
	e := newEngine(t)
	alice := newSigner("alice")
	e.fund(t, alice, 2_000_000_000)

	res, err := e.deposit(t, alice, 1_000_000_000, 1)
	require.NoError(t, err)
	assert.Equal(t, tx.TesSUCCESS, res.Result)
	assert.True(t, res.Applied)
	assert.Equal(t, testFee, res.Fee)
	assert.Equal(t, amount.Amount(1_000_000_000), res.Moved)

	v := e.vaultOf(t, alice)
	assert.True(t, v.Exists)
	assert.Equal(t, amount.Amount(1_000_000_000), v.Balance)
	assert.Equal(t, v.Balance, v.Held)
	assert.Equal(t, amount.Amount(1_000_000_000-10), e.account(t, alice).Balance)

	res, err = e.withdraw(t, alice, 2)
	require.NoError(t, err)
	assert.Equal(t, amount.Amount(1_000_000_000), res.Moved)

	v = e.vaultOf(t, alice)
	assert.False(t, v.Exists)
	assert.True(t, v.Held.IsZero())
	acct := e.account(t, alice)
	assert.Equal(t, amount.Amount(2_000_000_000-20), acct.Balance)
	assert.Equal(t, uint64(3), acct.Sequence)
}

func TestSecondDepositFailsAndChargesNothing(t *testing.T) {
	e := newEngine(t)
	bob := newSigner("bob")
	e.fund(t, bob, 10_000)

	_, err := e.deposit(t, bob, 500, 1)
	require.NoError(t, err)
	before := e.account(t, bob)

	res, err := e.deposit(t, bob, 500, 2)
	require.ErrorIs(t, err, vault.ErrVaultAlreadyExists)
	assert.Contains(t, err.Error(), "VaultAlreadyExists")
	assert.Equal(t, tx.TecDUPLICATE, res.Result)
	assert.False(t, res.Applied)
	assert.True(t, res.Fee.IsZero())

	assert.Equal(t, before, e.account(t, bob))
	assert.Equal(t, amount.Amount(500), e.vaultOf(t, bob).Balance)
}

func TestRecreateAfterWithdraw(t *testing.T) {
	e := newEngine(t)
	carol := newSigner("carol")
	e.fund(t, carol, 10_000)

	_, err := e.deposit(t, carol, 1_000, 1)
	require.NoError(t, err)
	_, err = e.withdraw(t, carol, 2)
	require.NoError(t, err)
	_, err = e.deposit(t, carol, 2_000, 3)
	require.NoError(t, err)
	assert.Equal(t, amount.Amount(2_000), e.vaultOf(t, carol).Balance)
}

func TestSubmitFailures(t *testing.T) {
	alice := newSigner("alice")
	mallory := newSigner("mallory")

	tests := []struct {
		name   string
		fund   amount.Amount
		submit func(t *testing.T, e *Engine) (ApplyResult, error)
		err    error
		result tx.Result
	}{
		{
			name: "below minimum",
			fund: 10_000,
			submit: func(t *testing.T, e *Engine) (ApplyResult, error) {
				return e.deposit(t, alice, testMinimum-1, 1)
			},
			err: vault.ErrInvalidAmount, result: tx.TemBAD_AMOUNT,
		},
		{
			name: "zero amount",
			fund: 10_000,
			submit: func(t *testing.T, e *Engine) (ApplyResult, error) {
				return e.deposit(t, alice, 0, 1)
			},
			err: vault.ErrInvalidAmount, result: tx.TemBAD_AMOUNT,
		},
		{
			name: "foreign identifier",
			fund: 10_000,
			submit: func(t *testing.T, e *Engine) (ApplyResult, error) {
				txn := tx.NewDeposit(e.deriver.Derive(mallory.owner), 1_000, 1)
				require.NoError(t, txn.Sign(alice.kp))
				return e.Submit(context.Background(), txn)
			},
			err: vault.ErrInvalidIdentifier, result: tx.TemBAD_IDENTIFIER,
		},
		{
			name: "withdraw without vault",
			fund: 10_000,
			submit: func(t *testing.T, e *Engine) (ApplyResult, error) {
				return e.withdraw(t, alice, 1)
			},
			err: vault.ErrVaultNotFound, result: tx.TecNO_ENTRY,
		},
		{
			name: "amount beyond balance",
			fund: 1_000,
			submit: func(t *testing.T, e *Engine) (ApplyResult, error) {
				return e.deposit(t, alice, 2_000, 1)
			},
			err: vault.ErrTransferFailed, result: tx.TecUNFUNDED,
		},
		{
			name: "amount plus fee beyond balance",
			fund: 1_000,
			submit: func(t *testing.T, e *Engine) (ApplyResult, error) {
				return e.deposit(t, alice, 1_000, 1)
			},
			err: vault.ErrTransferFailed, result: tx.TecUNFUNDED,
		},
		{
			name: "fee beyond balance",
			fund: 5,
			submit: func(t *testing.T, e *Engine) (ApplyResult, error) {
				return e.withdraw(t, alice, 1)
			},
			err: tx.ErrInsufficientFee, result: tx.TerINSUF_FEE_B,
		},
		{
			name: "past sequence",
			fund: 10_000,
			submit: func(t *testing.T, e *Engine) (ApplyResult, error) {
				_, err := e.deposit(t, alice, 1_000, 1)
				require.NoError(t, err)
				return e.withdraw(t, alice, 1)
			},
			err: tx.ErrPastSequence, result: tx.TefPAST_SEQ,
		},
		{
			name: "future sequence",
			fund: 10_000,
			submit: func(t *testing.T, e *Engine) (ApplyResult, error) {
				return e.deposit(t, alice, 1_000, 5)
			},
			err: tx.ErrFutureSequence, result: tx.TerPRE_SEQ,
		},
		{
			name: "unfunded signer",
			submit: func(t *testing.T, e *Engine) (ApplyResult, error) {
				return e.deposit(t, mallory, 1_000, 1)
			},
			err: tx.ErrNoAccount, result: tx.TerNO_ACCOUNT,
		},
		{
			name: "forged signature",
			fund: 10_000,
			submit: func(t *testing.T, e *Engine) (ApplyResult, error) {
				txn := tx.NewDeposit(e.deriver.Derive(alice.owner), 1_000, 1)
				require.NoError(t, txn.Sign(mallory.kp))
				txn.SigningPubKey = alice.kp.PublicKey()
				return e.Submit(context.Background(), txn)
			},
			err: crypto.ErrInvalidSignature, result: tx.TefBAD_SIGNATURE,
		},
		{
			name: "unsigned",
			fund: 10_000,
			submit: func(t *testing.T, e *Engine) (ApplyResult, error) {
				txn := tx.NewDeposit(e.deriver.Derive(alice.owner), 1_000, 1)
				txn.SigningPubKey = alice.kp.PublicKey()
				return e.Submit(context.Background(), txn)
			},
			err: tx.ErrMissingSignature, result: tx.TemBAD_SIGNATURE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t)
			if tt.fund > 0 {
				e.fund(t, alice, tt.fund)
			}
			before := e.account(t, alice)

			res, err := tt.submit(t, e)
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.result, res.Result)
			assert.False(t, res.Applied)
			assert.True(t, res.Fee.IsZero())

			if tt.name != "past sequence" {
				assert.Equal(t, before, e.account(t, alice), "failed transaction changed the account")
				assert.False(t, e.vaultOf(t, alice).Exists)
			}
		})
	}
}

func TestJournalRecordsEveryOutcome(t *testing.T) {
	j := &memJournal{}
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	e := newEngine(t, WithJournal(j), WithClock(func() time.Time { return at }))
	dave := newSigner("dave")
	e.fund(t, dave, 10_000)

	ok, err := e.deposit(t, dave, 700, 1)
	require.NoError(t, err)
	_, err = e.deposit(t, dave, 700, 2)
	require.Error(t, err)

	require.Len(t, j.recs, 2)
	assert.Equal(t, ok.Hash, j.recs[0].Hash)
	assert.Equal(t, "VaultDeposit", j.recs[0].Type)
	assert.Equal(t, dave.owner.String(), j.recs[0].Owner)
	assert.Equal(t, e.deriver.Derive(dave.owner).String(), j.recs[0].Vault)
	assert.Equal(t, uint64(700), j.recs[0].Amount)
	assert.Equal(t, testFee.Units(), j.recs[0].Fee)
	assert.Equal(t, "tesSUCCESS", j.recs[0].Result)
	assert.Equal(t, at, j.recs[0].AppliedAt)

	assert.Equal(t, "tecDUPLICATE", j.recs[1].Result)
	assert.Zero(t, j.recs[1].Fee)
}

func TestConcurrentOwnersAreIndependent(t *testing.T) {
	e := newEngine(t)
	const owners = 16

	var g errgroup.Group
	for i := 0; i < owners; i++ {
		s := newSigner(fmt.Sprintf("owner-%d", i))
		g.Go(func() error {
			if _, err := e.Fund(context.Background(), s.owner, 5_000); err != nil {
				return err
			}
			if _, err := e.submitSigned(s, tx.NewDeposit(e.deriver.Derive(s.owner), 1_000, 1)); err != nil {
				return err
			}
			_, err := e.submitSigned(s, tx.NewWithdraw(e.deriver.Derive(s.owner), 2))
			return err
		})
	}
	require.NoError(t, g.Wait())

	for i := 0; i < owners; i++ {
		s := newSigner(fmt.Sprintf("owner-%d", i))
		assert.Equal(t, amount.Amount(5_000-2*testFee), e.account(t, s).Balance)
		assert.False(t, e.vaultOf(t, s).Exists)
	}
	assert.Zero(t, e.locks.size())
}

func TestConcurrentDepositsCreateOneVault(t *testing.T) {
	e := newEngine(t)
	erin := newSigner("erin")
	e.fund(t, erin, 100_000)

	const attempts = 8
	var (
		g       errgroup.Group
		mu      sync.Mutex
		applied int
	)
	for i := 0; i < attempts; i++ {
		g.Go(func() error {
			_, err := e.submitSigned(erin, tx.NewDeposit(e.deriver.Derive(erin.owner), 1_000, 1))
			if err == nil {
				mu.Lock()
				applied++
				mu.Unlock()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, applied)
	assert.Equal(t, amount.Amount(1_000), e.vaultOf(t, erin).Balance)
	assert.Equal(t, amount.Amount(100_000-1_000-testFee), e.account(t, erin).Balance)
}

func TestFund(t *testing.T) {
	e := newEngine(t)
	frank := newSigner("frank")

	_, err := e.Fund(context.Background(), frank.owner, 0)
	require.ErrorIs(t, err, vault.ErrInvalidAmount)

	bal, err := e.Fund(context.Background(), frank.owner, 300)
	require.NoError(t, err)
	assert.Equal(t, amount.Amount(300), bal)
	bal, err = e.Fund(context.Background(), frank.owner, 200)
	require.NoError(t, err)
	assert.Equal(t, amount.Amount(500), bal)

	seq, err := e.NextSequence(context.Background(), frank.owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)

	_, err = e.Fund(context.Background(), frank.owner, amount.Amount(^uint64(0)))
	require.ErrorIs(t, err, amount.ErrOverflow)
	assert.Equal(t, amount.Amount(500), e.account(t, frank).Balance)
}

func TestNextSequenceWithoutAccount(t *testing.T) {
	e := newEngine(t)
	_, err := e.NextSequence(context.Background(), newSigner("ghost").owner)
	require.ErrorIs(t, err, ledger.ErrNoAccount)
}

func TestCanceledContext(t *testing.T) {
	e := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	alice := newSigner("alice")
	txn := tx.NewDeposit(e.deriver.Derive(alice.owner), 1_000, 1)
	require.NoError(t, txn.Sign(alice.kp))
	_, err := e.Submit(ctx, txn)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSequencePastUint32(t *testing.T) {
	e := newEngine(t)
	gina := newSigner("gina")
	e.seedAccount(t, gina, 1_000, math.MaxUint32)

	_, err := e.deposit(t, gina, 500, math.MaxUint32)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint32)+1, e.account(t, gina).Sequence)

	res, err := e.withdraw(t, gina, uint64(math.MaxUint32)+1)
	require.NoError(t, err)
	assert.Equal(t, amount.Amount(500), res.Moved)
	assert.False(t, e.vaultOf(t, gina).Exists)
}

func TestExhaustedSequenceFailsClosed(t *testing.T) {
	e := newEngine(t)
	hank := newSigner("hank")
	e.seedAccount(t, hank, 1_000, math.MaxUint64)

	res, err := e.deposit(t, hank, 500, math.MaxUint64)
	require.ErrorIs(t, err, ledger.ErrSequenceExhausted)
	assert.Equal(t, tx.TefINTERNAL, res.Result)
	assert.False(t, res.Applied)

	acct := e.account(t, hank)
	assert.Equal(t, uint64(math.MaxUint64), acct.Sequence)
	assert.Equal(t, amount.Amount(1_000), acct.Balance)
	assert.False(t, e.vaultOf(t, hank).Exists)
}

func TestCommitLogsTouchedEntries(t *testing.T) {
	var buf bytes.Buffer
	e := newEngine(t, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	ivy := newSigner("ivy")
	e.fund(t, ivy, 1_000)

	buf.Reset()
	_, err := e.deposit(t, ivy, 500, 1)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"inserted":2,"modified":1,"erased":0`)

	buf.Reset()
	_, err = e.withdraw(t, ivy, 2)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"inserted":0,"modified":1,"erased":2`)
}
