// Package engine applies signed vault transactions to a ledger Store.
//
// Every transaction runs against a fresh ApplyStateTable. Its changes reach
// the store in one batch only when it succeeds; otherwise the table is
// dropped and nothing, not even the fee, is charged. Transactions for the
// same owner are serialized on the owner's vault identifier.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/en-tropyc/blueshift/internal/core/amount"
	"github.com/en-tropyc/blueshift/internal/core/ledger"
	"github.com/en-tropyc/blueshift/internal/core/tx"
	"github.com/en-tropyc/blueshift/internal/core/vault"
	"github.com/en-tropyc/blueshift/internal/storage/journal"
	"github.com/rs/zerolog"
)

// Config holds the ledger parameters of an engine.
type Config struct {
	// ProgramID is mixed into every vault identifier.
	ProgramID [32]byte

	// MinimumBalance is the smallest amount a vault may be created with.
	MinimumBalance amount.Amount

	// BaseFee is charged to the signer of every applied transaction.
	BaseFee amount.Amount
}

// Journal receives a record of every submitted transaction.
type Journal interface {
	Append(ctx context.Context, rec journal.Record) error
}

// ApplyResult describes the outcome of a submitted transaction.
type ApplyResult struct {
	Hash    [32]byte
	Result  tx.Result
	Applied bool

	// Fee is the fee charged. It is zero when the transaction was not applied.
	Fee amount.Amount

	// Moved is the value that entered (deposit) or left (withdraw) the vault.
	Moved amount.Amount

	Message string
}

// Engine applies transactions.
type Engine struct {
	config  Config
	deriver *vault.Deriver
	store   *ledger.Store
	journal Journal
	log     zerolog.Logger
	locks   *keyedMutex
	now     func() time.Time
}

type Option func(*Engine)

func WithJournal(j Journal) Option {
	return func(e *Engine) { e.journal = j }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine over store.
func New(store *ledger.Store, config Config, opts ...Option) *Engine {
	e := &Engine{
		config:  config,
		deriver: vault.NewDeriver(config.ProgramID),
		store:   store,
		log:     zerolog.Nop(),
		locks:   newKeyedMutex(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Config() Config {
	return e.config
}

func (e *Engine) Deriver() *vault.Deriver {
	return e.deriver
}

// Submit applies t. The returned error is nil exactly when the transaction
// was applied; otherwise it carries the cause, and the result still reports
// the matching code.
func (e *Engine) Submit(ctx context.Context, t *tx.Transaction) (ApplyResult, error) {
	if err := ctx.Err(); err != nil {
		return ApplyResult{Result: tx.TefINTERNAL, Message: err.Error()}, err
	}

	hash, err := t.Hash()
	if err != nil {
		return e.finish(ctx, t, ApplyResult{}, fmt.Errorf("%w: %w", tx.ErrMalformed, err))
	}
	res := ApplyResult{Hash: hash}

	// Preflight: checks that need no ledger state.
	if err := t.Validate(); err != nil {
		return e.finish(ctx, t, res, err)
	}
	if err := t.VerifySignature(); err != nil {
		return e.finish(ctx, t, res, err)
	}

	owner := t.Owner()
	unlock := e.locks.Lock(e.deriver.Derive(owner))
	defer unlock()

	table := ledger.NewApplyStateTable(e.store.View(ctx))
	if err := e.preclaim(table, owner, t.Sequence); err != nil {
		return e.finish(ctx, t, res, err)
	}

	moved, err := e.doApply(table, owner, t)
	if err != nil {
		return e.finish(ctx, t, res, err)
	}

	if err := e.store.Apply(ctx, table.Changes()); err != nil {
		return e.finish(ctx, t, res, err)
	}
	inserted, modified, erased := table.Touched()
	e.log.Debug().Hex("hash", hash[:]).
		Int("inserted", inserted).Int("modified", modified).Int("erased", erased).
		Msg("ledger changes committed")
	res.Fee = e.config.BaseFee
	res.Moved = moved
	return e.finish(ctx, t, res, nil)
}

// preclaim checks the signer's account: it must exist and carry the
// transaction's sequence.
func (e *Engine) preclaim(view ledger.View, owner vault.Owner, sequence uint64) error {
	root, err := ledger.ReadAccountRoot(view, owner)
	if err != nil {
		return err
	}
	if root == nil {
		return tx.ErrNoAccount
	}
	switch {
	case sequence < root.Sequence:
		return fmt.Errorf("%w: got %d, account is at %d", tx.ErrPastSequence, sequence, root.Sequence)
	case sequence > root.Sequence:
		return fmt.Errorf("%w: got %d, account is at %d", tx.ErrFutureSequence, sequence, root.Sequence)
	}
	return nil
}

// doApply charges the fee, runs the vault transition and consumes the
// sequence, all inside table.
func (e *Engine) doApply(table *ledger.ApplyStateTable, owner vault.Owner, t *tx.Transaction) (amount.Amount, error) {
	if err := ledger.Debit(table, owner, e.config.BaseFee); err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			return 0, fmt.Errorf("%w: %w", tx.ErrInsufficientFee, err)
		}
		return 0, err
	}

	machine := vault.NewMachine(e.deriver, ledger.NewAdapter(table, e.config.MinimumBalance))

	var moved amount.Amount
	switch t.TxType {
	case tx.TypeDeposit:
		if err := machine.Deposit(owner, t.VaultID(), t.DepositAmount()); err != nil {
			return 0, err
		}
		moved = t.DepositAmount()
	case tx.TypeWithdraw:
		out, err := machine.Withdraw(owner, t.VaultID())
		if err != nil {
			return 0, err
		}
		moved = out
	default:
		return 0, tx.ErrUnknownType
	}

	if err := ledger.BumpSequence(table, owner); err != nil {
		return 0, err
	}
	return moved, nil
}

func (e *Engine) finish(ctx context.Context, t *tx.Transaction, res ApplyResult, err error) (ApplyResult, error) {
	res.Result = tx.ResultFromError(err)
	res.Applied = res.Result.IsSuccess()
	res.Message = res.Result.Message()

	owner := t.Owner()
	ev := e.log.Info()
	if err != nil {
		ev = e.log.Warn().Err(err)
		if res.Result == tx.TefINTERNAL || res.Result == tx.TecINVARIANT_FAILED {
			ev = e.log.Error().Err(err)
		}
	}
	ev.Str("tx", t.TxType.String()).
		Hex("hash", res.Hash[:]).
		Stringer("owner", owner).
		Stringer("vault", t.VaultID()).
		Uint64("sequence", t.Sequence).
		Str("result", res.Result.String()).
		Uint64("fee", res.Fee.Units()).
		Uint64("moved", res.Moved.Units()).
		Msg("transaction processed")

	if e.journal != nil {
		moved := res.Moved
		if t.TxType == tx.TypeDeposit && moved.IsZero() {
			moved = t.DepositAmount()
		}
		rec := journal.Record{
			Hash:      res.Hash,
			Type:      t.TxType.String(),
			Owner:     owner.String(),
			Vault:     t.VaultID().String(),
			Sequence:  t.Sequence,
			Amount:    moved.Units(),
			Fee:       res.Fee.Units(),
			Result:    res.Result.String(),
			AppliedAt: e.now(),
		}
		if jerr := e.journal.Append(ctx, rec); jerr != nil {
			e.log.Error().Err(jerr).Hex("hash", res.Hash[:]).Msg("failed to journal transaction")
		}
	}
	return res, err
}
