package engine

import (
	"context"
	"fmt"

	"github.com/en-tropyc/blueshift/internal/core/amount"
	"github.com/en-tropyc/blueshift/internal/core/ledger"
	"github.com/en-tropyc/blueshift/internal/core/vault"
)

// AccountInfo is the external account of an owner.
type AccountInfo struct {
	Owner    vault.Owner
	Exists   bool
	Balance  amount.Amount
	Sequence uint64
}

// VaultInfo is the state at an owner's vault identifier.
type VaultInfo struct {
	Owner  vault.Owner
	ID     vault.Identifier
	Exists bool

	// Balance is the recorded vault balance; Held is the value the ledger
	// holds at the identifier. The two agree whenever Exists is true.
	Balance amount.Amount
	Held    amount.Amount
}

// Fund credits amt to owner's external account, creating it when needed.
// It returns the new balance.
func (e *Engine) Fund(ctx context.Context, owner vault.Owner, amt amount.Amount) (amount.Amount, error) {
	if amt.IsZero() {
		return 0, fmt.Errorf("%w: zero airdrop", vault.ErrInvalidAmount)
	}
	unlock := e.locks.Lock(e.deriver.Derive(owner))
	defer unlock()

	table := ledger.NewApplyStateTable(e.store.View(ctx))
	if err := ledger.Credit(table, owner, amt); err != nil {
		return 0, fmt.Errorf("fund %s: %w", owner, err)
	}
	root, err := ledger.ReadAccountRoot(table, owner)
	if err != nil {
		return 0, err
	}
	if err := e.store.Apply(ctx, table.Changes()); err != nil {
		return 0, err
	}

	e.log.Info().Stringer("owner", owner).Uint64("amount", amt.Units()).Uint64("balance", root.Balance).Msg("account funded")
	return amount.Amount(root.Balance), nil
}

func (e *Engine) AccountInfo(ctx context.Context, owner vault.Owner) (AccountInfo, error) {
	info := AccountInfo{Owner: owner}
	root, err := ledger.ReadAccountRoot(e.store.View(ctx), owner)
	if err != nil {
		return info, err
	}
	if root != nil {
		info.Exists = true
		info.Balance = amount.Amount(root.Balance)
		info.Sequence = root.Sequence
	}
	return info, nil
}

func (e *Engine) VaultInfo(ctx context.Context, owner vault.Owner) (VaultInfo, error) {
	id := e.deriver.Derive(owner)
	info := VaultInfo{Owner: owner, ID: id}

	// Reads go through an adapter over a throwaway table; nothing is committed.
	adapter := ledger.NewAdapter(ledger.NewApplyStateTable(e.store.View(ctx)), e.config.MinimumBalance)
	rec, err := adapter.LookupRecord(id)
	if err != nil {
		return info, err
	}
	if rec != nil {
		info.Exists = true
		info.Balance = rec.Balance
	}
	if info.Held, err = adapter.HeldBalance(id); err != nil {
		return info, err
	}
	return info, nil
}

// NextSequence is the sequence the owner's next transaction must carry.
func (e *Engine) NextSequence(ctx context.Context, owner vault.Owner) (uint64, error) {
	info, err := e.AccountInfo(ctx, owner)
	if err != nil {
		return 0, err
	}
	if !info.Exists {
		return 0, fmt.Errorf("%w: %s", ledger.ErrNoAccount, owner)
	}
	return info.Sequence, nil
}
